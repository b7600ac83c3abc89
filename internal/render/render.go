// Package render is the html/template renderer used by echo.
package render

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer clones the base layout for every page so each page can
// define its own blocks
type TemplateRenderer struct {
	templates map[string]*template.Template
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
	"add": func(a, b int) int { return a + b },
	"pct": func(v float64) string { return fmt.Sprintf("%.0f", v) },
}

// New parses layouts, partials, pages and standalone templates from fsys.
// Layout is templates/layouts/*.html, templates/partials/*.html,
// templates/pages/*.html and templates/*.html for pages without the layout.
func New(fsys fs.FS) (*TemplateRenderer, error) {
	templates := make(map[string]*template.Template)

	base, err := template.New("").Funcs(funcs).ParseFS(fsys, "templates/layouts/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}
	if _, err := base.ParseFS(fsys, "templates/partials/*.html"); err != nil {
		return nil, fmt.Errorf("parse partials: %w", err)
	}

	pages, err := fs.Glob(fsys, "templates/pages/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range pages {
		tmpl, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := tmpl.ParseFS(fsys, page); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[path.Base(page)] = tmpl
	}

	standalone, err := fs.Glob(fsys, "templates/*.html")
	if err != nil {
		return nil, err
	}
	for _, page := range standalone {
		name := path.Base(page)
		if _, exists := templates[name]; exists {
			continue
		}
		tmpl, err := template.New(name).Funcs(funcs).ParseFS(fsys, page)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		templates[name] = tmpl
	}

	return &TemplateRenderer{templates: templates}, nil
}

// Has reports whether a template with that name was parsed
func (t *TemplateRenderer) Has(name string) bool {
	_, ok := t.templates[name]
	return ok
}

// Render renders a page inside the base layout, or a standalone template as is
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	tmpl, ok := t.templates[name]
	if !ok {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}

	if tmpl.Lookup("base") != nil {
		if page, ok := data.(*PageData); ok {
			page.UserEmail = stringFrom(c, "userEmail")
			page.UserUID = stringFrom(c, "userUID")
			page.CurrentPath = c.Request().URL.Path
		}
		return tmpl.ExecuteTemplate(w, "base", data)
	}
	return tmpl.Execute(w, data)
}

// Breadcrumb represents a navigation trail
type Breadcrumb struct {
	Title string
	URL   string
}

// PageData is the common data structure passed to layout pages
type PageData struct {
	Title       string
	ActiveNav   string
	Breadcrumbs []Breadcrumb
	UserEmail   string
	UserUID     string
	CurrentPath string
	Flash       string
	Data        interface{}
}

func stringFrom(c echo.Context, key string) string {
	if v, ok := c.Get(key).(string); ok {
		return v
	}
	return ""
}
