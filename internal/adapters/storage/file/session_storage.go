// Package file guarda las sesiones en un archivo JSON. Lo usa panelctl para
// recordar el login entre comandos y el panel con SESSION_STORE=file.
package file

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/platform/logger"
)

// SessionBackend persiste map[sesión]map[key]valor en path.
// El archivo se reescribe completo en cada cambio (tmp + rename).
// Un archivo ilegible cuenta como vacío y se borra.
type SessionBackend struct {
	path string
	log  logger.Logger
	mu   sync.Mutex
}

func NewSessionBackend(path string, log logger.Logger) *SessionBackend {
	if log == nil {
		log = logger.Nop()
	}
	return &SessionBackend{path: path, log: log}
}

func (b *SessionBackend) Path() string { return b.path }

func (b *SessionBackend) Scope(id string) session.Storage {
	return &sessionStorage{b: b, id: id}
}

func (b *SessionBackend) load() (map[string]map[string]string, error) {
	raw, err := os.ReadFile(b.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]map[string]string{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("file: read sessions: %w", err)
	}
	if len(raw) == 0 {
		return map[string]map[string]string{}, nil
	}

	data := map[string]map[string]string{}
	if err := json.Unmarshal(raw, &data); err != nil {
		b.log.Warn("discarding unreadable session file", map[string]any{
			"path":  b.path,
			"error": err.Error(),
		})
		if err := os.Remove(b.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("file: remove unreadable sessions: %w", err)
		}
		return map[string]map[string]string{}, nil
	}
	return data, nil
}

func (b *SessionBackend) save(data map[string]map[string]string) error {
	if dir := filepath.Dir(b.path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return fmt.Errorf("file: create dir: %w", err)
		}
	}

	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("file: encode sessions: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), ".sessions-*.json")
	if err != nil {
		return fmt.Errorf("file: temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file: write sessions: %w", err)
	}
	if err := tmp.Chmod(0o600); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("file: chmod sessions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("file: close sessions: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		return fmt.Errorf("file: replace sessions: %w", err)
	}
	return nil
}

type sessionStorage struct {
	b  *SessionBackend
	id string
}

func (s *sessionStorage) Get(_ context.Context, key string) (string, bool, error) {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	data, err := s.b.load()
	if err != nil {
		return "", false, err
	}
	v, ok := data[s.id][key]
	return v, ok, nil
}

func (s *sessionStorage) SetAll(_ context.Context, values map[string]string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	data, err := s.b.load()
	if err != nil {
		return err
	}
	m, ok := data[s.id]
	if !ok {
		m = make(map[string]string, len(values))
		data[s.id] = m
	}
	for k, v := range values {
		m[k] = v
	}
	return s.b.save(data)
}

func (s *sessionStorage) RemoveAll(_ context.Context, keys ...string) error {
	s.b.mu.Lock()
	defer s.b.mu.Unlock()

	data, err := s.b.load()
	if err != nil {
		return err
	}
	m, ok := data[s.id]
	if !ok {
		return nil
	}
	for _, k := range keys {
		delete(m, k)
	}
	if len(m) == 0 {
		delete(data, s.id)
	}
	return s.b.save(data)
}
