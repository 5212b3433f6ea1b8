// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"
	"time"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
)

// CreateResetToken stores a hashed reset token for a user.
func (r *Repository) CreateResetToken(ctx context.Context, userID int64, tokenHash string, expiresAt time.Time) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO reset_tokens (user_id, token_hash, expires_at) VALUES (?, ?, ?)`,
		userID, tokenHash, expiresAt)
	return err
}

// GetResetToken retrieves a reset token by hash.
func (r *Repository) GetResetToken(ctx context.Context, tokenHash string) (*models.ResetToken, error) {
	var token models.ResetToken
	err := r.db.GetContext(ctx, &token,
		`SELECT * FROM reset_tokens WHERE token_hash = ?`, tokenHash)
	if err != nil {
		return nil, wrapError(err)
	}
	return &token, nil
}

// ConsumeResetToken marks a token as used. The guard re-checks expiry and
// the unused state inside the UPDATE itself, so concurrent submissions of
// the same token serialize and at most one call reports success.
func (r *Repository) ConsumeResetToken(ctx context.Context, tokenHash string, now time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE reset_tokens SET used_at = ? WHERE token_hash = ? AND used_at IS NULL AND expires_at > ?`,
		now, tokenHash, now)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected == 1, nil
}

// DeleteUnusedResetTokens removes a user's outstanding tokens so that only
// the most recently issued one is live.
func (r *Repository) DeleteUnusedResetTokens(ctx context.Context, userID int64) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE user_id = ? AND used_at IS NULL`, userID)
	return err
}

// DeleteExpiredResetTokens deletes expired tokens.
func (r *Repository) DeleteExpiredResetTokens(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx,
		`DELETE FROM reset_tokens WHERE expires_at < ?`, time.Now().UTC())
	return err
}
