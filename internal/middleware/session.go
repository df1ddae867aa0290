package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/web"
)

// CookieOptions configura la cookie que identifica la sesión del panel.
type CookieOptions struct {
	Name   string
	Secure bool
}

const defaultCookieName = "panel_session"

// Session arma el Store de cada request:
// - La cookie solo lleva un id opaco; token y usuario viven en el backend de storage.
// - Si no hay cookie (o no es un uuid) se emite una nueva.
// - Hydrate corre una vez por request; si el storage falla, el request sigue sin sesión.
func Session(backend session.Backend, opts CookieOptions, log logger.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = logger.Nop()
	}
	name := strings.TrimSpace(opts.Name)
	if name == "" {
		name = defaultCookieName
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if session.IsPublic(r.URL.Path) && r.URL.Path != session.LoginPath {
				next.ServeHTTP(w, r)
				return
			}

			id := sessionID(r, name)
			if id == "" {
				id = uuid.NewString()
				http.SetCookie(w, &http.Cookie{
					Name:     name,
					Value:    id,
					Path:     "/",
					HttpOnly: true,
					Secure:   opts.Secure,
					SameSite: http.SameSiteLaxMode,
				})
			}

			nav := web.NewNavigation(r.URL.Path)
			store := session.NewStore(backend.Scope(id), nav, log.With(map[string]any{"request_id": RequestIDFrom(r.Context())}))
			if err := store.Hydrate(r.Context()); err != nil {
				log.Error("hydrate session", map[string]any{"error": err.Error()})
			}

			ctx := session.NewContext(r.Context(), store)
			ctx = web.WithNavigation(ctx, nav)
			ctx = web.WithViewer(ctx, session.UserName(ctx))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// Guard aplica la regla de redirección: sin sesión todo va a /login y con
// sesión /login va al inicio.
func Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		store, ok := session.FromContext(r.Context())
		authenticated := ok && store.IsAuthenticated()

		if target, redirect := session.Guard(authenticated, r.URL.Path); redirect {
			http.Redirect(w, r, target, http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func sessionID(r *http.Request, name string) string {
	c, err := r.Cookie(name)
	if err != nil {
		return ""
	}
	id, err := uuid.Parse(strings.TrimSpace(c.Value))
	if err != nil {
		return ""
	}
	return id.String()
}
