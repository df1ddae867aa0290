package session

import (
	"errors"

	"nutri-admin/internal/domain/users"
)

// Keys del storage persistido. Se escriben y se borran siempre juntas.
const (
	KeyToken = "token"
	KeyUser  = "user"
)

// Paths que conoce la regla de redirección.
const (
	LoginPath  = "/login"
	LogoutPath = "/logout"
	HomePath   = "/"
)

var (
	ErrNotAuthorized = errors.New("session: only admin users may sign in")
	ErrInvalidToken  = errors.New("session: token is empty")
)

// State es una foto de la sesión en memoria.
type State struct {
	User    *users.User
	Token   string
	Loading bool
}

// Authenticated = user presente, token presente y rol admin.
func (s State) Authenticated() bool {
	return s.User != nil && s.Token != "" && s.User.IsAdmin()
}
