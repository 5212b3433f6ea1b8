// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

// Package views renders the embedded HTML templates. The markup is
// deliberately bare; presentation is not the point of this application.
package views

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html
var templatesFS embed.FS

// Renderer implements echo.Renderer over the embedded template set.
// Templates are addressed by their base filename, e.g. "login.html".
type Renderer struct {
	templates *template.Template
}

// New parses all embedded templates.
func New() (*Renderer, error) {
	templates, err := template.ParseFS(templatesFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &Renderer{templates: templates}, nil
}

// Render implements echo.Renderer.
func (r *Renderer) Render(w io.Writer, name string, data any, _ echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
