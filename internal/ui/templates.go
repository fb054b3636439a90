package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"
)

//go:embed templates/*.html templates/partials/*.html
var templatesFS embed.FS

//go:embed static/*
var staticFiles embed.FS

// TemplateManager renders the embedded page templates for echo
type TemplateManager struct {
	templates *template.Template
}

// NewTemplateManager parses all embedded templates
func NewTemplateManager() (*TemplateManager, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/*.html", "templates/partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return &TemplateManager{templates: tmpl}, nil
}

// Render implements echo.Renderer
func (tm *TemplateManager) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	return tm.templates.ExecuteTemplate(w, name, data)
}
