// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package session manages server-side sessions. The browser cookie carries
// only a sealed session id; the authoritative state is a database row.
package session

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/config"
	"codeberg.org/oliverandrich/kingcooking/internal/models"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
)

// ErrNoSession is returned when the request carries no valid session.
var ErrNoSession = errors.New("no valid session")

// Manager creates, resolves and destroys sessions.
type Manager struct {
	repo       *repository.Repository
	codec      *securecookie.SecureCookie
	cookieName string
	maxAge     time.Duration
	secure     bool
}

// NewManager creates a session manager. An empty hash key generates an
// ephemeral one, which invalidates all cookies on restart.
func NewManager(cfg *config.SessionConfig, repo *repository.Repository, secure bool) (*Manager, error) {
	hashKey, err := keyFromHex(cfg.HashKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session hash key: %w", err)
	}
	if hashKey == nil {
		slog.Warn("session hash key not configured, generating ephemeral key")
		hashKey = securecookie.GenerateRandomKey(64)
	}

	blockKey, err := keyFromHex(cfg.BlockKey)
	if err != nil {
		return nil, fmt.Errorf("invalid session block key: %w", err)
	}

	codec := securecookie.New(hashKey, blockKey)
	codec.MaxAge(cfg.MaxAge)

	return &Manager{
		repo:       repo,
		codec:      codec,
		cookieName: cfg.CookieName,
		maxAge:     time.Duration(cfg.MaxAge) * time.Second,
		secure:     secure,
	}, nil
}

// CookieName returns the configured cookie name.
func (m *Manager) CookieName() string {
	return m.cookieName
}

// Create establishes a new session for the user and returns the cookie to
// set. Every login gets a fresh session id.
func (m *Manager) Create(ctx context.Context, userID int64) (*http.Cookie, error) {
	id := uuid.NewString()
	expiresAt := time.Now().Add(m.maxAge)

	if err := m.repo.CreateSession(ctx, id, userID, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}

	sealed, err := m.codec.Encode(m.cookieName, id)
	if err != nil {
		return nil, fmt.Errorf("failed to seal session cookie: %w", err)
	}

	return &http.Cookie{
		Name:     m.cookieName,
		Value:    sealed,
		Path:     "/",
		MaxAge:   int(m.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Resolve returns the session referenced by the request cookie, or
// ErrNoSession when the cookie is absent, unreadable, or the row is gone.
func (m *Manager) Resolve(ctx context.Context, r *http.Request) (*models.Session, error) {
	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return nil, ErrNoSession
	}

	var id string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &id); err != nil {
		return nil, ErrNoSession
	}

	session, err := m.repo.GetSession(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoSession
		}
		return nil, err
	}
	return session, nil
}

// Destroy deletes the session row referenced by the request, if any, and
// returns the clearing cookie. A store failure is reported but the cookie
// is cleared regardless.
func (m *Manager) Destroy(ctx context.Context, r *http.Request) (*http.Cookie, error) {
	clear := m.Clear()

	cookie, err := r.Cookie(m.cookieName)
	if err != nil {
		return clear, nil
	}

	var id string
	if err := m.codec.Decode(m.cookieName, cookie.Value, &id); err != nil {
		return clear, nil
	}

	if err := m.repo.DeleteSession(ctx, id); err != nil {
		return clear, fmt.Errorf("failed to delete session: %w", err)
	}
	return clear, nil
}

// Clear returns a cookie that removes the session cookie from the browser.
func (m *Manager) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     m.cookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func keyFromHex(key string) ([]byte, error) {
	if key == "" {
		return nil, nil
	}
	decoded, err := hex.DecodeString(key)
	if err != nil {
		return nil, err
	}
	return decoded, nil
}
