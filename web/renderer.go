package web

import (
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// TemplateRenderer is the echo renderer for the html/template tree.
//
// Layouts and partials are parsed once into a base set; every page clones the
// base so it can define its own blocks. Names ending in ".html" render a page
// through its "base" layout, any other name executes that partial on its own.
type TemplateRenderer struct {
	base  *template.Template
	pages map[string]*template.Template
}

// NewTemplateRenderer parses layouts/, partials/ and pages/ from fsys
func NewTemplateRenderer(fsys fs.FS) (*TemplateRenderer, error) {
	base, err := template.New("").Funcs(funcMap).ParseFS(fsys, "layouts/*.html", "partials/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse layouts: %w", err)
	}

	pageFiles, err := fs.Glob(fsys, "pages/*.html")
	if err != nil {
		return nil, err
	}

	pages := make(map[string]*template.Template, len(pageFiles))
	for _, page := range pageFiles {
		pageTemplate, err := base.Clone()
		if err != nil {
			return nil, err
		}
		if _, err := pageTemplate.ParseFS(fsys, page); err != nil {
			return nil, fmt.Errorf("parse %s: %w", page, err)
		}
		pages[path.Base(page)] = pageTemplate
	}

	return &TemplateRenderer{base: base, pages: pages}, nil
}

// Render renders a page or a partial
func (t *TemplateRenderer) Render(w io.Writer, name string, data interface{}, c echo.Context) error {
	if strings.HasSuffix(name, ".html") {
		tmpl, ok := t.pages[name]
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
		}
		return tmpl.ExecuteTemplate(w, "base", data)
	}

	if t.base.Lookup(name) == nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Template not found: "+name)
	}
	return t.base.ExecuteTemplate(w, name, data)
}

var funcMap = template.FuncMap{
	"join":  strings.Join,
	"lower": strings.ToLower,
	"query": url.QueryEscape,
	"slug": func(s string) string {
		return strings.ReplaceAll(strings.ToLower(s), " ", "-")
	},
	"dict": func(pairs ...interface{}) (map[string]interface{}, error) {
		if len(pairs)%2 != 0 {
			return nil, fmt.Errorf("dict needs key/value pairs")
		}
		m := make(map[string]interface{}, len(pairs)/2)
		for i := 0; i < len(pairs); i += 2 {
			key, ok := pairs[i].(string)
			if !ok {
				return nil, fmt.Errorf("dict key %v is not a string", pairs[i])
			}
			m[key] = pairs[i+1]
		}
		return m, nil
	},
}
