// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
)

// CreateRecipe creates a recipe stamped with its owner.
func (r *Repository) CreateRecipe(ctx context.Context, userID int64, name, image string) (*models.Recipe, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO recipes (user_id, name, image) VALUES (?, ?, ?)`,
		userID, name, image)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetRecipe(ctx, userID, id)
}

// GetRecipe retrieves one of the user's recipes.
func (r *Repository) GetRecipe(ctx context.Context, userID, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	err := r.db.GetContext(ctx, &recipe,
		`SELECT * FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &recipe, nil
}

// ListRecipes returns all recipes owned by the user, newest first.
func (r *Repository) ListRecipes(ctx context.Context, userID int64) ([]models.Recipe, error) {
	var recipes []models.Recipe
	err := r.db.SelectContext(ctx, &recipes,
		`SELECT * FROM recipes WHERE user_id = ? ORDER BY created_at DESC, id DESC`, userID)
	if err != nil {
		return nil, err
	}
	return recipes, nil
}

// UpdateRecipe overwrites the recipe's fields if it belongs to the user.
func (r *Repository) UpdateRecipe(ctx context.Context, userID, id int64, name, image string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE recipes SET name = ?, image = ? WHERE id = ? AND user_id = ?`,
		name, image, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteRecipe deletes the recipe if it belongs to the user. Ingredients go
// with it via the foreign key cascade.
func (r *Repository) DeleteRecipe(ctx context.Context, userID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM recipes WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
