package nutrition

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"nutri-admin/internal/web"
)

type launcherView struct {
	Cards   []Card
	Section *Card
}

func RegisterRoutes(r chi.Router, view *web.Renderer) {
	r.Get("/", homeHandler(view))
	r.Route("/nutrition", func(nr chi.Router) {
		nr.Get("/", catalogHandler(view))
		nr.Get("/{slug}", sectionHandler(view))
	})
}

func homeHandler(view *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, http.StatusOK, "home", web.Page{
			Title:    "Inicio",
			Active:   "home",
			UserName: web.Viewer(r.Context()),
			Body:     launcherView{Cards: HomeCards()},
		})
	}
}

func catalogHandler(view *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		view.Render(w, http.StatusOK, "nutrition", web.Page{
			Title:    "Nutrición",
			Active:   "nutrition",
			UserName: web.Viewer(r.Context()),
			Body:     launcherView{Cards: CatalogCards()},
		})
	}
}

func sectionHandler(view *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		card, ok := FindCatalog(chi.URLParam(r, "slug"))
		if !ok {
			http.NotFound(w, r)
			return
		}
		view.Render(w, http.StatusOK, "nutrition", web.Page{
			Title:    card.Title,
			Active:   "nutrition",
			UserName: web.Viewer(r.Context()),
			Body:     launcherView{Cards: CatalogCards(), Section: &card},
		})
	}
}
