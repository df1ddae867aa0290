package router

import (
	"net/http"

	"nutri-admin/internal/adapters/dashboardapi"
	mem "nutri-admin/internal/adapters/storage/memory"
	"nutri-admin/internal/domain/children"
	"nutri-admin/internal/domain/nutrition"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/middleware"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
	"nutri-admin/internal/web"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	API *dashboardapi.Client

	// Opcional: si no viene, las sesiones quedan en memoria.
	Sessions session.Backend

	Cookie   middleware.CookieOptions
	Logger   logger.Logger
	Renderer *web.Renderer
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	view := opts.Renderer
	if view == nil {
		view = web.MustRenderer()
	}
	sessions := opts.Sessions
	if sessions == nil {
		sessions = mem.NewSessionBackend()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLog(log))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Handle("/static/*", web.StaticHandler())

	r.Group(func(pr chi.Router) {
		pr.Use(middleware.Session(sessions, opts.Cookie, log))
		pr.Use(middleware.Guard)

		session.RegisterRoutes(pr, opts.API, view, log)
		nutrition.RegisterRoutes(pr, view)
		users.RegisterRoutes(pr, func(r *http.Request) dashboard.Lister[users.User] {
			return opts.API.Users(authFrom(r))
		}, view, log)
		children.RegisterRoutes(pr, func(r *http.Request) dashboard.Lister[children.Child] {
			return opts.API.Children(authFrom(r))
		}, view, log)
	})

	return r
}

// authFrom devuelve la sesión del request como Authenticator (nil si no hay).
func authFrom(r *http.Request) httpclient.Authenticator {
	if store, ok := session.FromContext(r.Context()); ok {
		return store
	}
	return nil
}
