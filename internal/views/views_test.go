// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package views_test

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"codeberg.org/oliverandrich/kingcooking/internal/flash"
	"codeberg.org/oliverandrich/kingcooking/internal/models"
	"codeberg.org/oliverandrich/kingcooking/internal/views"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllTemplatesRender(t *testing.T) {
	renderer, err := views.New()
	require.NoError(t, err)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	data := map[string]any{
		"Title":    "Test",
		"Flash":    flash.Messages{Success: []string{"saved"}, Error: []string{"broken"}},
		"CSRF":     "token",
		"Username": "alice@example.com",
		"Token":    "deadbeef",
		"Recipe":   &models.Recipe{ID: 1, Name: "Tomato Soup", Image: "https://example.com/soup.jpg"},
		"Recipes":  []models.Recipe{{ID: 1, Name: "Tomato Soup"}},
		"Ingredients": []models.Ingredient{
			{ID: 1, RecipeID: 1, Name: "Tomatoes", Quantity: "500g", BestDish: "Soup"},
		},
		"Ingredient": &models.Ingredient{ID: 1, RecipeID: 1, Name: "Tomatoes", Quantity: "500g"},
		"Favorites":  []models.Favorite{{ID: 1, Title: "Pie", Description: "Best pie"}},
		"Entries":    []models.ScheduleEntry{{ID: 1, RecipeName: "Tomato Soup", ScheduledOn: "2025-09-01", TimeOfDay: "dinner"}},
	}

	pages := []string{
		"index.html", "signup.html", "login.html", "forgot.html", "reset.html",
		"dashboard.html", "recipes.html", "newrecipe.html", "recipe.html",
		"newingredient.html", "editingredient.html", "favourites.html",
		"newfavourite.html", "schedule.html", "newschedule.html",
	}

	for _, name := range pages {
		var buf bytes.Buffer
		require.NoError(t, renderer.Render(&buf, name, data, c), name)
		assert.Contains(t, buf.String(), "</html>", name)
		assert.Contains(t, buf.String(), "saved", name)
	}
}

func TestFlashPartialEscapesContent(t *testing.T) {
	renderer, err := views.New()
	require.NoError(t, err)

	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	var buf bytes.Buffer
	err = renderer.Render(&buf, "login.html", map[string]any{
		"Title": "Login",
		"Flash": flash.Messages{Error: []string{"<script>alert(1)</script>"}},
		"CSRF":  "token",
	}, c)

	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "<script>alert(1)</script>")
	assert.Contains(t, buf.String(), "&lt;script&gt;")
}
