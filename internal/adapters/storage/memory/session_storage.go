package memory

import (
	"context"
	"strings"
	"sync"

	"nutri-admin/internal/domain/session"
)

// SessionBackend guarda las sesiones en memoria del proceso.
// Se pierden al reiniciar; sirve para dev y tests.
type SessionBackend struct {
	mu     sync.RWMutex
	scopes map[string]map[string]string
}

func NewSessionBackend() *SessionBackend {
	return &SessionBackend{scopes: make(map[string]map[string]string)}
}

func (b *SessionBackend) Scope(id string) session.Storage {
	return &scopedStorage{b: b, id: strings.TrimSpace(id)}
}

// Len devuelve cuántas keys tiene una sesión.
func (b *SessionBackend) Len(id string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.scopes[id])
}

type scopedStorage struct {
	b  *SessionBackend
	id string
}

func (s *scopedStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.b.mu.RLock()
	defer s.b.mu.RUnlock()

	v, ok := s.b.scopes[s.id][key]
	return v, ok, nil
}

func (s *scopedStorage) SetAll(_ context.Context, values map[string]string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	m, ok := s.b.scopes[s.id]
	if !ok {
		m = make(map[string]string, len(values))
		s.b.scopes[s.id] = m
	}
	for k, v := range values {
		m[k] = v
	}
	return nil
}

func (s *scopedStorage) RemoveAll(_ context.Context, keys ...string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	m, ok := s.b.scopes[s.id]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(s.b.scopes, s.id)
	}
	return nil
}
