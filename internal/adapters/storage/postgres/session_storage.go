package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"nutri-admin/internal/domain/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS panel_sessions (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	PRIMARY KEY (session_id, key)
)`

// SessionBackend guarda cada sesión del panel como filas (session_id, key).
type SessionBackend struct {
	db *sql.DB
}

func NewSessionBackend(db *sql.DB) *SessionBackend {
	return &SessionBackend{db: db}
}

// EnsureSchema crea la tabla si no existe.
func (b *SessionBackend) EnsureSchema(ctx context.Context) error {
	if _, err := b.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("postgres: ensure session schema: %w", err)
	}
	return nil
}

func (b *SessionBackend) Scope(id string) session.Storage {
	return &sessionStorage{db: b.db, id: id}
}

type sessionStorage struct {
	db *sql.DB
	id string
}

func (s *sessionStorage) Get(ctx context.Context, key string) (string, bool, error) {
	var v string
	err := s.db.QueryRowContext(ctx, `
		SELECT value FROM panel_sessions
		WHERE session_id = $1 AND key = $2
	`, s.id, key).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

// SetAll escribe todas las keys en una transacción.
func (s *sessionStorage) SetAll(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC()
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO panel_sessions (session_id, key, value, updated_at)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (session_id, key)
			DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at
		`, s.id, k, v, now); err != nil {
			return err
		}
	}
	return tx.Commit()
}

func (s *sessionStorage) RemoveAll(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, k := range keys {
		if _, err := tx.ExecContext(ctx, `
			DELETE FROM panel_sessions WHERE session_id = $1 AND key = $2
		`, s.id, k); err != nil {
			return err
		}
	}
	return tx.Commit()
}
