package postgres

import (
	"context"
	"os"
	"testing"
)

// Necesita un Postgres real: TEST_DB_DSN=postgres://... go test ./...
func TestSessionBackend_Postgres(t *testing.T) {
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}

	db, err := Open(dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	b := NewSessionBackend(db)
	if err := b.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}

	s := b.Scope("pg-test")
	t.Cleanup(func() { _ = s.RemoveAll(ctx, "token", "user") })

	if err := s.SetAll(ctx, map[string]string{"token": "t1", "user": `{"id":"1"}`}); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := s.SetAll(ctx, map[string]string{"token": "t2"}); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if v, ok, err := s.Get(ctx, "token"); err != nil || !ok || v != "t2" {
		t.Fatalf("get token = %q,%v,%v", v, ok, err)
	}

	if err := s.RemoveAll(ctx, "token", "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "user"); ok {
		t.Fatal("user must be removed")
	}
}
