package session

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/web"
)

const (
	msgLoginFailed = "No se pudo iniciar sesión. Verifique sus credenciales."
	msgNotAdmin    = "Acceso denegado: solo los administradores pueden ingresar al panel."
	msgNoSession   = "La sesión no está disponible. Intente nuevamente."
)

// LoginGateway obtiene token y usuario del backend.
type LoginGateway interface {
	Login(ctx context.Context, email, password string) (string, users.User, error)
}

// LoginMessage traduce un error de login al mensaje que ve el usuario.
func LoginMessage(err error) string {
	if errors.Is(err, ErrNotAuthorized) {
		return msgNotAdmin
	}
	return httpclient.MessageOf(err, msgLoginFailed)
}

// LoginView es el Body de la página de login.
type LoginView struct {
	Email   string
	Message string
}

func RegisterRoutes(r chi.Router, gw LoginGateway, view *web.Renderer, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Get(LoginPath, loginPageHandler(view))
	r.Post(LoginPath, loginHandler(gw, view, log))
	r.Post(LogoutPath, logoutHandler(log))
}

func renderLogin(w http.ResponseWriter, view *web.Renderer, status int, v LoginView) {
	view.Render(w, status, "login", web.Page{Title: "Ingresar", Body: v})
}

func loginPageHandler(view *web.Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderLogin(w, view, http.StatusOK, LoginView{})
	}
}

func loginHandler(gw LoginGateway, view *web.Renderer, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, ok := FromContext(r.Context())
		if !ok {
			renderLogin(w, view, http.StatusInternalServerError, LoginView{Message: msgNoSession})
			return
		}
		if err := r.ParseForm(); err != nil {
			renderLogin(w, view, http.StatusBadRequest, LoginView{Message: msgLoginFailed})
			return
		}

		email := strings.TrimSpace(r.PostForm.Get("email"))
		password := r.PostForm.Get("password")
		v := LoginView{Email: email}

		token, user, err := gw.Login(r.Context(), email, password)
		if err != nil {
			log.Warn("login rejected by backend", map[string]any{"email": email, "error": err.Error()})
			v.Message = LoginMessage(err)
			renderLogin(w, view, http.StatusUnauthorized, v)
			return
		}

		if err := store.Login(r.Context(), token, user); err != nil {
			switch {
			case errors.Is(err, ErrNotAuthorized):
				log.Warn("non-admin login attempt", map[string]any{"email": email, "role": string(user.Role)})
				v.Message = LoginMessage(err)
				renderLogin(w, view, http.StatusForbidden, v)
			case errors.Is(err, ErrInvalidToken):
				v.Message = msgLoginFailed
				renderLogin(w, view, http.StatusBadGateway, v)
			default:
				log.Error("persist session", map[string]any{"error": err.Error()})
				v.Message = msgNoSession
				renderLogin(w, view, http.StatusInternalServerError, v)
			}
			return
		}

		http.Redirect(w, r, HomePath, http.StatusSeeOther)
	}
}

func logoutHandler(log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if store, ok := FromContext(r.Context()); ok {
			if err := store.Logout(r.Context()); err != nil {
				log.Error("logout", map[string]any{"error": err.Error()})
			}
		}
		if web.Follow(w, r, web.NavigationFrom(r.Context())) {
			return
		}
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
	}
}
