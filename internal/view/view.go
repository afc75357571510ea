// Package view renders the named HTML pages selected by the login flow.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

// Renderer writes a named view with its data bag to the response.
type Renderer interface {
	Render(w http.ResponseWriter, status int, name string, data map[string]any) error
}

// TemplateRenderer renders the embedded HTML templates.
type TemplateRenderer struct {
	views map[string]*template.Template
}

// NewTemplateRenderer parses every embedded template. The view name is the
// file name without the .html extension.
func NewTemplateRenderer() (*TemplateRenderer, error) {
	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, fmt.Errorf("read templates: %w", err)
	}

	views := make(map[string]*template.Template, len(entries))
	for _, e := range entries {
		name := e.Name()
		tmpl, err := template.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		views[name[:len(name)-len(".html")]] = tmpl
	}
	return &TemplateRenderer{views: views}, nil
}

// Render executes the view into a buffer first so a template error never
// leaves a half-written response.
func (r *TemplateRenderer) Render(w http.ResponseWriter, status int, name string, data map[string]any) error {
	tmpl, ok := r.views[name]
	if !ok {
		return fmt.Errorf("unknown view %q", name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("render view %q: %w", name, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
