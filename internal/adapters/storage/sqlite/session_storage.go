// Package sqlite guarda las sesiones del panel en un archivo SQLite local
// (modernc.org/sqlite, sin cgo).
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"nutri-admin/internal/domain/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS panel_sessions (
	session_id TEXT NOT NULL,
	key        TEXT NOT NULL,
	value      TEXT NOT NULL,
	updated_at TEXT NOT NULL,
	PRIMARY KEY (session_id, key)
)`

// Open abre (o crea) la base y aplica el schema.
func Open(path string) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("sqlite: create dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, err
	}
	// un solo writer
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("sqlite: ensure schema: %w", err)
	}
	return db, nil
}

type SessionBackend struct {
	db *sql.DB
}

func NewSessionBackend(db *sql.DB) *SessionBackend {
	return &SessionBackend{db: db}
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
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM panel_sessions WHERE session_id = ? AND key = ?`,
		s.id, key,
	).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return v, true, nil
}

func (s *sessionStorage) SetAll(ctx context.Context, values map[string]string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	now := time.Now().UTC().Format(time.RFC3339Nano)
	for k, v := range values {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO panel_sessions (session_id, key, value, updated_at)
			VALUES (?, ?, ?, ?)
			ON CONFLICT (session_id, key)
			DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
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
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM panel_sessions WHERE session_id = ? AND key = ?`,
			s.id, k,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}
