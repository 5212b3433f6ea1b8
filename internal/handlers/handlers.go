// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package handlers contains the HTTP handlers.
package handlers

import (
	"net/http"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/repository"
	"github.com/labstack/echo/v4"
)

// Handlers contains the public page handlers.
type Handlers struct {
	base
	repo *repository.Repository
}

// New creates a new Handlers instance.
func New(repo *repository.Repository, flashStore *flash.Store) *Handlers {
	return &Handlers{base: base{flash: flashStore}, repo: repo}
}

// Health returns the health status.
func (h *Handlers) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status": "ok",
	})
}

// Index renders the landing page.
func (h *Handlers) Index(c echo.Context) error {
	return h.render(c, http.StatusOK, "index.html", "Welcome", nil)
}

// Dashboard renders the dashboard for the authenticated user.
func (h *Handlers) Dashboard(c echo.Context) error {
	return h.render(c, http.StatusOK, "dashboard.html", "Dashboard", nil)
}
