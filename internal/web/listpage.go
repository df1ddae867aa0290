package web

import (
	"net/http"

	"nutri-admin/internal/listing"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
)

// ListPage sirve un listado paginado con búsqueda y detalle.
// Cada request arma su propio listing.Controller con el lister de la sesión.
type ListPage[T any] struct {
	Path     string
	Template string // también es la entrada activa del menú
	Title    string

	Lister       func(r *http.Request) dashboard.Lister[T]
	Key          func(T) string
	ErrorMessage string
	Logger       logger.Logger
	View         *Renderer

	// Build convierte el estado del controller en el Body del template.
	Build func(st listing.State[T]) any
}

func (p *ListPage[T]) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	params := ParseListParams(r)

	log := p.Logger
	if log == nil {
		log = logger.Nop()
	}
	ctrl := listing.New(p.Lister(r), listing.Options[T]{
		Key:          p.Key,
		ErrorMessage: p.ErrorMessage,
		Logger:       log.With(map[string]any{"list": p.Template}),
	})
	defer ctrl.Close()

	_ = ctrl.Fetch(r.Context(), params.Page, params.Search)

	// 401: la sesión ya se limpió y pidió ir al login.
	if Follow(w, r, NavigationFrom(r.Context())) {
		return
	}

	st := ctrl.State()
	if st.Err == "" && st.TotalPages > 0 && params.Page > st.TotalPages {
		http.Redirect(w, r, ListURL(p.Path, st.TotalPages, params.Search, ""), http.StatusSeeOther)
		return
	}
	if params.Selected != "" {
		ctrl.Select(params.Selected)
		st = ctrl.State()
	}

	p.View.Render(w, http.StatusOK, p.Template, Page{
		Title:    p.Title,
		Active:   p.Template,
		UserName: Viewer(r.Context()),
		Body:     p.Build(st),
	})
}
