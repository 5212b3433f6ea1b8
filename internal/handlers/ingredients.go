// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/models"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"github.com/labstack/echo/v4"
)

// Show renders a recipe with its ingredient list.
func (h *RecipeHandlers) Show(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}

	ingredients, err := h.repo.ListIngredients(ctx, user.ID, recipe.ID)
	if err != nil {
		slog.Error("ingredient_list_failed", "error", err, "recipe_id", recipe.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	}

	return h.render(c, http.StatusOK, "recipe.html", recipe.Name, map[string]any{
		"Recipe":      recipe,
		"Ingredients": ingredients,
	})
}

// NewIngredientPage renders the new-ingredient form for a recipe.
func (h *RecipeHandlers) NewIngredientPage(c echo.Context) error {
	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}

	return h.render(c, http.StatusOK, "newingredient.html", "New ingredient", map[string]any{
		"Recipe": recipe,
	})
}

// CreateIngredient adds an ingredient to a recipe owned by the user.
func (h *RecipeHandlers) CreateIngredient(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}
	detail := fmt.Sprintf("/dashboard/myreceipes/%d", recipe.ID)

	name := strings.TrimSpace(c.FormValue("name"))
	quantity := strings.TrimSpace(c.FormValue("quantity"))
	bestDish := strings.TrimSpace(c.FormValue("best_dish"))

	if name == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return c.Redirect(http.StatusSeeOther, detail+"/newingredient")
	}

	if _, err := h.repo.CreateIngredient(ctx, user.ID, recipe.ID, name, quantity, bestDish); err != nil {
		slog.Error("ingredient_create_failed", "error", err, "recipe_id", recipe.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return c.Redirect(http.StatusSeeOther, detail+"/newingredient")
	}

	h.flash.Success(c, i18n.T(ctx, "flash_ingredient_created"))
	return c.Redirect(http.StatusSeeOther, detail)
}

// EditIngredientPage renders the edit form for an ingredient.
func (h *RecipeHandlers) EditIngredientPage(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}
	detail := fmt.Sprintf("/dashboard/myreceipes/%d", recipe.ID)

	ingredientID, err := idParam(c, "ingredientID")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
		return c.Redirect(http.StatusSeeOther, detail)
	}

	ingredient, err := h.repo.GetIngredient(ctx, user.ID, recipe.ID, ingredientID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("ingredient_get_failed", "error", err, "ingredient_id", ingredientID)
		}
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
		return c.Redirect(http.StatusSeeOther, detail)
	}

	return h.render(c, http.StatusOK, "editingredient.html", "Edit ingredient", map[string]any{
		"Recipe":     recipe,
		"Ingredient": ingredient,
	})
}

// UpdateIngredient changes an ingredient of a recipe owned by the user.
func (h *RecipeHandlers) UpdateIngredient(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}
	detail := fmt.Sprintf("/dashboard/myreceipes/%d", recipe.ID)

	ingredientID, err := idParam(c, "ingredientID")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
		return c.Redirect(http.StatusSeeOther, detail)
	}

	name := strings.TrimSpace(c.FormValue("name"))
	quantity := strings.TrimSpace(c.FormValue("quantity"))
	bestDish := strings.TrimSpace(c.FormValue("best_dish"))

	if name == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return c.Redirect(http.StatusSeeOther, detail)
	}

	switch err := h.repo.UpdateIngredient(ctx, user.ID, recipe.ID, ingredientID, name, quantity, bestDish); {
	case errors.Is(err, repository.ErrNotFound):
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
	case err != nil:
		slog.Error("ingredient_update_failed", "error", err, "ingredient_id", ingredientID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	default:
		h.flash.Success(c, i18n.T(ctx, "flash_ingredient_updated"))
	}

	return c.Redirect(http.StatusSeeOther, detail)
}

// DeleteIngredient removes an ingredient of a recipe owned by the user.
func (h *RecipeHandlers) DeleteIngredient(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipe, ok := h.ownedRecipe(c)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}
	detail := fmt.Sprintf("/dashboard/myreceipes/%d", recipe.ID)

	ingredientID, err := idParam(c, "ingredientID")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
		return c.Redirect(http.StatusSeeOther, detail)
	}

	switch err := h.repo.DeleteIngredient(ctx, user.ID, recipe.ID, ingredientID); {
	case errors.Is(err, repository.ErrNotFound):
		h.flash.Error(c, i18n.T(ctx, "flash_ingredient_missing"))
	case err != nil:
		slog.Error("ingredient_delete_failed", "error", err, "ingredient_id", ingredientID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	default:
		h.flash.Success(c, i18n.T(ctx, "flash_ingredient_deleted"))
	}

	return c.Redirect(http.StatusSeeOther, detail)
}

// ownedRecipe loads the recipe from the :id parameter, scoped to the
// authenticated user. A miss flashes and reports !ok; recipes of other users
// are indistinguishable from missing ones.
func (h *RecipeHandlers) ownedRecipe(c echo.Context) (*models.Recipe, bool) {
	ctx := c.Request().Context()
	user := currentUser(c)

	id, err := idParam(c, "id")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_recipe_missing"))
		return nil, false
	}

	recipe, err := h.repo.GetRecipe(ctx, user.ID, id)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			slog.Error("recipe_get_failed", "error", err, "recipe_id", id)
		}
		h.flash.Error(c, i18n.T(ctx, "flash_recipe_missing"))
		return nil, false
	}
	return recipe, true
}
