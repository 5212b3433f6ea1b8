// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package handlers

import (
	"net/http"
	"strconv"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/models"
	"codeberg.org/oliverandrich/kingcooking/internal/services/session"
	"github.com/labstack/echo/v4"
)

// base carries what every page handler needs to render.
type base struct {
	flash *flash.Store
}

// render executes the named template with the flash messages, CSRF token and
// current username merged into data.
func (b base) render(c echo.Context, status int, name, title string, data map[string]any) error {
	if data == nil {
		data = map[string]any{}
	}
	data["Title"] = title
	data["Flash"] = b.flash.Pop(c)
	if token, ok := c.Get("csrf").(string); ok {
		data["CSRF"] = token
	}
	if user := session.UserFrom(c.Request().Context()); user != nil {
		data["Username"] = user.Username
	}
	return c.Render(status, name, data)
}

// currentUser returns the authenticated user. Routes behind the auth gate
// always carry one.
func currentUser(c echo.Context) *models.User {
	return session.UserFrom(c.Request().Context())
}

// idParam parses a positive numeric path parameter.
func idParam(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusNotFound)
	}
	return id, nil
}
