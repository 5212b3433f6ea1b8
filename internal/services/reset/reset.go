// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package reset implements the password-reset token flow. Tokens are random,
// stored only as SHA256 hashes, expire after a fixed TTL and are single-use.
package reset

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"codeberg.org/oliverandrich/kingcooking/internal/services/auth"
)

const (
	// TokenLength is the number of random bytes for reset tokens.
	TokenLength = 32
	// DefaultTokenExpiry is how long reset tokens are valid.
	DefaultTokenExpiry = time.Hour
)

var (
	// ErrTokenInvalid covers unknown, expired and already-consumed tokens.
	// Callers must not be able to tell the three states apart.
	ErrTokenInvalid = errors.New("reset token is invalid or expired")
)

// Service issues, validates and consumes password-reset tokens.
type Service struct {
	repo *repository.Repository
	auth *auth.Service
	ttl  time.Duration
}

// NewService creates a new reset service. A non-positive ttl falls back to
// DefaultTokenExpiry.
func NewService(repo *repository.Repository, authService *auth.Service, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenExpiry
	}
	return &Service{repo: repo, auth: authService, ttl: ttl}
}

// HashToken computes the SHA256 hash of a token.
func HashToken(token string) string {
	hash := sha256.Sum256([]byte(token))
	return hex.EncodeToString(hash[:])
}

// Issue creates a fresh reset token for the named user and returns the
// plaintext token for the notification email. Previously issued, unconsumed
// tokens for the same user are dropped, so exactly one token is live.
func (s *Service) Issue(ctx context.Context, username string) (string, *models.User, error) {
	user, err := s.repo.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", nil, auth.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("failed to get user: %w", err)
	}

	bytes := make([]byte, TokenLength)
	if _, err := rand.Read(bytes); err != nil {
		return "", nil, fmt.Errorf("failed to generate random bytes: %w", err)
	}
	plaintext := hex.EncodeToString(bytes)

	if err := s.repo.DeleteUnusedResetTokens(ctx, user.ID); err != nil {
		return "", nil, fmt.Errorf("failed to drop stale tokens: %w", err)
	}

	expiresAt := time.Now().Add(s.ttl)
	if err := s.repo.CreateResetToken(ctx, user.ID, HashToken(plaintext), expiresAt); err != nil {
		return "", nil, fmt.Errorf("failed to store token: %w", err)
	}

	slog.Info("reset_token_issued", "user_id", user.ID, "expires_at", expiresAt)

	return plaintext, user, nil
}

// Validate checks whether a plaintext token is currently usable. Used by the
// GET step to decide whether to render the reset form at all.
func (s *Service) Validate(ctx context.Context, token string) error {
	stored, err := s.repo.GetResetToken(ctx, HashToken(token))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to get token: %w", err)
	}
	if !stored.Usable(time.Now()) {
		return ErrTokenInvalid
	}
	return nil
}

// Reset consumes the token and sets the user's password. The token is
// claimed first with a guarded update, so of any number of concurrent
// submissions exactly one proceeds to the password change; the GET-step
// validation is deliberately not trusted here.
func (s *Service) Reset(ctx context.Context, token, newPassword string) error {
	tokenHash := HashToken(token)

	stored, err := s.repo.GetResetToken(ctx, tokenHash)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTokenInvalid
		}
		return fmt.Errorf("failed to get token: %w", err)
	}

	claimed, err := s.repo.ConsumeResetToken(ctx, tokenHash, time.Now())
	if err != nil {
		return fmt.Errorf("failed to consume token: %w", err)
	}
	if !claimed {
		return ErrTokenInvalid
	}

	if err := s.auth.SetPassword(ctx, stored.UserID, newPassword); err != nil {
		// Token is already consumed; the user must restart the email flow.
		slog.Error("reset_password_update_failed", "user_id", stored.UserID, "error", err)
		return err
	}

	// No session survives a password reset.
	if err := s.repo.DeleteUserSessions(ctx, stored.UserID); err != nil {
		slog.Error("reset_session_invalidation_failed", "user_id", stored.UserID, "error", err)
	}

	slog.Info("reset_success", "user_id", stored.UserID)
	return nil
}
