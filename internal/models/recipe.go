// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package models

import "time"

// Recipe belongs to exactly one user.
type Recipe struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	Name      string    `db:"name" json:"name"`
	Image     string    `db:"image" json:"image"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// Ingredient belongs to a recipe and inherits its owner.
type Ingredient struct { //nolint:govet // fieldalignment: readability over optimization
	ID        int64     `db:"id" json:"id"`
	UserID    int64     `db:"user_id" json:"user_id"`
	RecipeID  int64     `db:"recipe_id" json:"recipe_id"`
	Name      string    `db:"name" json:"name"`
	Quantity  string    `db:"quantity" json:"quantity"`
	BestDish  string    `db:"best_dish" json:"best_dish"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
