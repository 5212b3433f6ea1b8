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

// FavoriteHandlers contains handlers for the favourites collection.
type FavoriteHandlers struct {
	base
	repo *repository.Repository
}

// NewFavorites creates a new FavoriteHandlers instance.
func NewFavorites(repo *repository.Repository, flashStore *flash.Store) *FavoriteHandlers {
	return &FavoriteHandlers{base: base{flash: flashStore}, repo: repo}
}

// List renders the favourites of the authenticated user.
func (h *FavoriteHandlers) List(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	favorites, err := h.repo.ListFavorites(ctx, user.ID)
	if err != nil {
		slog.Error("favorite_list_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	}

	return h.render(c, http.StatusOK, "favourites.html", "Favourites", map[string]any{
		"Favorites": favorites,
	})
}

// NewPage renders the new-favourite form.
func (h *FavoriteHandlers) NewPage(c echo.Context) error {
	return h.render(c, http.StatusOK, "newfavourite.html", "New favourite", nil)
}

// Create adds a favourite for the authenticated user.
func (h *FavoriteHandlers) Create(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)
	title := strings.TrimSpace(c.FormValue("title"))
	image := strings.TrimSpace(c.FormValue("image"))
	description := strings.TrimSpace(c.FormValue("description"))

	if title == "" {
		h.flash.Error(c, i18n.T(ctx, "flash_missing_fields"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/favourites/newfavourite")
	}

	if _, err := h.repo.CreateFavorite(ctx, user.ID, title, image, description); err != nil {
		slog.Error("favorite_create_failed", "error", err, "user_id", user.ID)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/favourites/newfavourite")
	}

	h.flash.Success(c, i18n.T(ctx, "flash_favorite_created"))
	return c.Redirect(http.StatusSeeOther, "/dashboard/favourites")
}

// Delete removes a favourite owned by the authenticated user.
func (h *FavoriteHandlers) Delete(c echo.Context) error {
	ctx := c.Request().Context()
	user := currentUser(c)

	id, err := idParam(c, "id")
	if err != nil {
		h.flash.Error(c, i18n.T(ctx, "flash_favorite_missing"))
		return c.Redirect(http.StatusSeeOther, "/dashboard/favourites")
	}

	switch err := h.repo.DeleteFavorite(ctx, user.ID, id); {
	case errors.Is(err, repository.ErrNotFound):
		h.flash.Error(c, i18n.T(ctx, "flash_favorite_missing"))
	case err != nil:
		slog.Error("favorite_delete_failed", "error", err, "user_id", user.ID, "favorite_id", id)
		h.flash.Error(c, i18n.T(ctx, "flash_store_error"))
	default:
		h.flash.Success(c, i18n.T(ctx, "flash_favorite_deleted"))
	}

	return c.Redirect(http.StatusSeeOther, "/dashboard/favourites")
}
