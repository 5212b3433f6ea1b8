// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package repository

import (
	"context"

	"codeberg.org/oliverandrich/kingcooking/internal/models"
)

// CreateIngredient adds an ingredient to one of the user's recipes.
func (r *Repository) CreateIngredient(ctx context.Context, userID, recipeID int64, name, quantity, bestDish string) (*models.Ingredient, error) {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO ingredients (user_id, recipe_id, name, quantity, best_dish) VALUES (?, ?, ?, ?, ?)`,
		userID, recipeID, name, quantity, bestDish)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	return r.GetIngredient(ctx, userID, recipeID, id)
}

// GetIngredient retrieves an ingredient scoped by owner and parent recipe.
func (r *Repository) GetIngredient(ctx context.Context, userID, recipeID, id int64) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := r.db.GetContext(ctx, &ingredient,
		`SELECT * FROM ingredients WHERE id = ? AND recipe_id = ? AND user_id = ?`,
		id, recipeID, userID)
	if err != nil {
		return nil, wrapError(err)
	}
	return &ingredient, nil
}

// ListIngredients returns all ingredients of one of the user's recipes.
func (r *Repository) ListIngredients(ctx context.Context, userID, recipeID int64) ([]models.Ingredient, error) {
	var ingredients []models.Ingredient
	err := r.db.SelectContext(ctx, &ingredients,
		`SELECT * FROM ingredients WHERE recipe_id = ? AND user_id = ? ORDER BY created_at DESC, id DESC`,
		recipeID, userID)
	if err != nil {
		return nil, err
	}
	return ingredients, nil
}

// UpdateIngredient overwrites the ingredient's fields. The owner and parent
// recipe are part of the WHERE clause, never trusted from the form.
func (r *Repository) UpdateIngredient(ctx context.Context, userID, recipeID, id int64, name, quantity, bestDish string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE ingredients SET name = ?, quantity = ?, best_dish = ? WHERE id = ? AND recipe_id = ? AND user_id = ?`,
		name, quantity, bestDish, id, recipeID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}

// DeleteIngredient deletes the ingredient scoped by owner and parent recipe.
func (r *Repository) DeleteIngredient(ctx context.Context, userID, recipeID, id int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM ingredients WHERE id = ? AND recipe_id = ? AND user_id = ?`,
		id, recipeID, userID)
	if err != nil {
		return err
	}
	return requireAffected(res)
}
