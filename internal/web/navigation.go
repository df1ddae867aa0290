package web

import (
	"context"
	"net/http"
	"sync"
)

// Navigation es el Navigator de un request: la ubicación es el path pedido
// y la primera navegación que pida la sesión se responde como redirect.
type Navigation struct {
	mu       sync.Mutex
	location string
	target   string
}

func NewNavigation(location string) *Navigation {
	return &Navigation{location: location}
}

func (n *Navigation) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *Navigation) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.target == "" {
		n.target = path
	}
}

func (n *Navigation) Target() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.target, n.target != ""
}

// Follow responde con 303 si hubo navegación pendiente. Devuelve true si respondió.
func Follow(w http.ResponseWriter, r *http.Request, n *Navigation) bool {
	if n == nil {
		return false
	}
	target, ok := n.Target()
	if !ok {
		return false
	}
	http.Redirect(w, r, target, http.StatusSeeOther)
	return true
}

type ctxKey string

const navigationKey ctxKey = "navigation"

func WithNavigation(ctx context.Context, n *Navigation) context.Context {
	return context.WithValue(ctx, navigationKey, n)
}

func NavigationFrom(ctx context.Context) *Navigation {
	n, _ := ctx.Value(navigationKey).(*Navigation)
	return n
}
