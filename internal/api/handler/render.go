package handler

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strconv"

	"github.com/labstack/echo/v4"
)

//go:embed web/templates/*.html web/assets/app.css
var webFS embed.FS

var pageNames = []string{"login", "dashboard", "shops", "confirm_delete"}

var templateFuncs = template.FuncMap{
	// amount prints a balance with two decimals and never in exponent form.
	"amount": func(v float64) string { return strconv.FormatFloat(v, 'f', 2, 64) },
}

// HeaderData is rendered by the navigation bar of every page.
type HeaderData struct {
	Title         string
	Authenticated bool
	Active        string
}

// Page wraps the shared header and page-specific content.
type Page[T any] struct {
	Header  HeaderData
	Content T
}

// Renderer renders the console pages inside the shared layout. It satisfies
// echo.Renderer.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}
	for _, name := range pageNames {
		t, err := template.New(name).Funcs(templateFuncs).
			ParseFS(webFS, "web/templates/layout.html", "web/templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("parse %s template: %w", name, err)
		}
		r.pages[name] = t
	}
	return r, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	t, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown page %q", name)
	}
	return t.ExecuteTemplate(w, "layout", data)
}

// Assets returns the embedded static files rooted at their URL prefix.
func Assets() fs.FS {
	sub, err := fs.Sub(webFS, "web/assets")
	if err != nil {
		panic(err)
	}
	return sub
}
