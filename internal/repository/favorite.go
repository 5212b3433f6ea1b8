// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
)

// CreateFavorite creates a favorite stamped with its owner.
func (r *Repository) CreateFavorite(ctx context.Context, userID int64, title, image, description string) (*models.Favorite, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO favorites (user_id, title, image, description) VALUES (?, ?, ?, ?)`,
		userID, title, image, description)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	var favorite models.Favorite
	if err := r.db.GetContext(ctx, &favorite,
		`SELECT * FROM favorites WHERE id = ? AND user_id = ?`, id, userID); err != nil {
		return nil, wrapError(err)
	}
	return &favorite, nil
}

// ListFavorites returns all favorites owned by the user, newest first.
func (r *Repository) ListFavorites(ctx context.Context, userID int64) ([]models.Favorite, error) {
	var favorites []models.Favorite
	err := r.db.SelectContext(ctx, &favorites,
		`SELECT * FROM favorites WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return favorites, nil
}

// UpdateFavorite overwrites the favorite's fields if it belongs to the user.
func (r *Repository) UpdateFavorite(ctx context.Context, userID, id int64, title, image, description string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE favorites SET title = ?, image = ?, description = ? WHERE id = ? AND user_id = ?`,
		title, image, description, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteFavorite deletes the favorite if it belongs to the user.
func (r *Repository) DeleteFavorite(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
