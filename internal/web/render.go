package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"path"
	"strings"
)

//go:embed templates/*.html static/*
var assets embed.FS

const layoutFile = "templates/layout.html"

// Page es lo que recibe el layout. Body es la vista propia de cada página.
type Page struct {
	Title    string
	Active   string
	UserName string
	Body     any
}

// Renderer tiene un template por página, cada uno con el layout común.
type Renderer struct {
	pages map[string]*template.Template
}

func NewRenderer() (*Renderer, error) {
	funcs := template.FuncMap{
		"add": func(a, b int) int { return a + b },
		"sub": func(a, b int) int { return a - b },
	}

	files, err := fs.Glob(assets, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("web: list templates: %w", err)
	}

	pages := make(map[string]*template.Template, len(files))
	for _, f := range files {
		if f == layoutFile {
			continue
		}
		t, err := template.New(path.Base(layoutFile)).Funcs(funcs).ParseFS(assets, layoutFile, f)
		if err != nil {
			return nil, fmt.Errorf("web: parse %s: %w", f, err)
		}
		pages[strings.TrimSuffix(path.Base(f), ".html")] = t
	}
	return &Renderer{pages: pages}, nil
}

// MustRenderer es para main y tests: los templates van embebidos,
// si no parsean es un bug de build.
func MustRenderer() *Renderer {
	r, err := NewRenderer()
	if err != nil {
		panic(err)
	}
	return r
}

// Render ejecuta la página en un buffer para no mandar HTML a medias.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, p Page) {
	t, ok := r.pages[name]
	if !ok {
		http.Error(w, "template not found", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, "layout", p); err != nil {
		http.Error(w, "render error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// StaticHandler sirve /static/* desde los assets embebidos.
func StaticHandler() http.Handler {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
