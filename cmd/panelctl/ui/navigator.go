package ui

import (
	"sync"

	"nutri-admin/internal/domain/session"
)

// Navigator conecta la sesión con las pantallas. Navigate puede llegar desde
// el goroutine de un fetch; la pantalla lo aplica en el próximo Update.
type Navigator struct {
	mu       sync.Mutex
	location string
	pending  string
}

func NewNavigator() *Navigator {
	return &Navigator{location: session.LoginPath}
}

func (n *Navigator) Location() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.location
}

func (n *Navigator) Navigate(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.pending = path
}

func (n *Navigator) setLocation(path string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.location = path
}

// take devuelve y limpia la navegación pendiente.
func (n *Navigator) take() (string, bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	p := n.pending
	n.pending = ""
	return p, p != ""
}
