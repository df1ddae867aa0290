package users

import (
	"strings"
	"time"

	"nutri-admin/internal/ports/dashboard"
)

// Role define el rol de un usuario en el backend.
// @Enum admin, medico, paciente
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleMedico   Role = "medico"
	RolePaciente Role = "paciente"
)

// ParseRole normaliza el rol; devuelve false si no es uno conocido.
func ParseRole(s string) (Role, bool) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleAdmin, RoleMedico, RolePaciente:
		return r, true
	default:
		return r, false
	}
}

func (r Role) Label() string {
	switch r {
	case RoleAdmin:
		return "Administrador"
	case RoleMedico:
		return "Médico"
	case RolePaciente:
		return "Paciente"
	default:
		return string(r)
	}
}

// User es el registro plano que devuelve GET /dashboard/users.
type User struct {
	ID        dashboard.ID `json:"id"`
	Name      string       `json:"name"`
	Email     string       `json:"email"`
	Role      Role         `json:"role"`
	CreatedAt time.Time    `json:"createdAt"`
}

// IsAdmin reporta si el usuario puede tener sesión en el panel.
func (u User) IsAdmin() bool {
	r, ok := ParseRole(string(u.Role))
	return ok && r == RoleAdmin
}

// Key identifica la fila en un listado.
func Key(u User) string { return u.ID.String() }
