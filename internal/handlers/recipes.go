// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/i18n"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"github.com/labstack/echo/v4"
)

// RecipeHandlers contains handlers for recipes and their ingredients.
type RecipeHandlers struct {
	base
	repo *repository.Repository
}

// NewRecipes creates a new RecipeHandlers instance.
func NewRecipes(repo *repository.Repository, flashStore *flash.Store) *RecipeHandlers {
	return &RecipeHandlers{base: base{flash: flashStore}, repo: repo}
}

// List renders the recipe list of the authenticated user.
func (h *RecipeHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	recipes, err := h.repo.ListRecipes(ctx, user.ID)
	if err != nil {
		slog.Error("recipe_list_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	}

	return h.render(c, http.StatusOK, "recipes.html", "My Recipes", map[string]any{
		"Recipes": recipes,
	})
}

// NewPage renders the new-recipe form.
func (h *RecipeHandlers) NewPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "newrecipe.html", "New recipe", nil)
}

// Create adds a recipe for the authenticated user.
func (h *RecipeHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	name := strings.TrimSpace(c.FormValue("name"))
	image := strings.TrimSpace(c.FormValue("image"))

	if name == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/newreceipe")
	}

	if _, err := h.repo.CreateRecipe(ctx, user.ID, name, image); err != nil {
		slog.Error("recipe_create_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/newreceipe")
	}

	h.flash.Success(c, i18n.T(ctx, "flash_recipe_created"))
	return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
}

// Delete removes a recipe owned by the authenticated user. Recipes of other
// users are reported as missing.
func (h *RecipeHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	id, err := idParam(c, "id")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_recipe_missing"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
	}

	switch err := h.repo.DeleteRecipe(ctx, user.ID, id); {
	case errors.Is(err, repository.ErrNotFound):
		h.flash.Error(c, i18n.T(ctx, "flash_recipe_missing"))
	case err != nil:
		slog.Error("recipe_delete_failed", "error", err, "user_id", user.ID, "recipe_id", id)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	default:
		h.flash.Success(c, i18n.T(ctx, "flash_recipe_deleted"))
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard/myreceipes")
}
