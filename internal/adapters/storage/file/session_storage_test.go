package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/domain/users"
)

func TestSessionBackend_PersistsAcrossInstances(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "sessions.json")

	if err := NewSessionBackend(path, nil).Scope("default").SetAll(ctx, map[string]string{
		"token": "t1",
		"user":  `{"id":"1"}`,
	}); err != nil {
		t.Fatalf("set: %v", err)
	}

	// Otra instancia (otro comando de panelctl) ve lo mismo.
	s := NewSessionBackend(path, nil).Scope("default")
	if v, ok, err := s.Get(ctx, "token"); err != nil || !ok || v != "t1" {
		t.Fatalf("get = %q,%v,%v", v, ok, err)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var got map[string]map[string]string
	if err := json.Unmarshal(raw, &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	want := map[string]map[string]string{"default": {"token": "t1", "user": `{"id":"1"}`}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("file content mismatch (-want +got):\n%s", diff)
	}
}

func TestSessionBackend_RemoveAllDropsScope(t *testing.T) {
	ctx := context.Background()
	b := NewSessionBackend(filepath.Join(t.TempDir(), "sessions.json"), nil)
	s := b.Scope("a")

	_ = s.SetAll(ctx, map[string]string{"token": "t", "user": "u"})
	_ = b.Scope("b").SetAll(ctx, map[string]string{"token": "other"})

	if err := s.RemoveAll(ctx, "token", "user"); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if _, ok, _ := s.Get(ctx, "token"); ok {
		t.Fatal("token must be removed")
	}
	if v, _, _ := b.Scope("b").Get(ctx, "token"); v != "other" {
		t.Fatalf("scope b touched: %q", v)
	}
}

func TestSessionBackend_MissingFileIsEmpty(t *testing.T) {
	s := NewSessionBackend(filepath.Join(t.TempDir(), "none.json"), nil).Scope("x")
	if _, ok, err := s.Get(context.Background(), "token"); ok || err != nil {
		t.Fatalf("got ok=%v err=%v", ok, err)
	}
}

func TestSessionBackend_CorruptFileIsDiscarded(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "sessions.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	s := NewSessionBackend(path, nil).Scope("default")

	if _, ok, err := s.Get(ctx, "token"); ok || err != nil {
		t.Fatalf("get = ok %v, err %v", ok, err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Fatalf("unreadable file must be removed, stat err = %v", err)
	}

	// Se puede volver a guardar y borrar sin intervención manual.
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.SetAll(ctx, map[string]string{"token": "t2"}); err != nil {
		t.Fatalf("set after corrupt file: %v", err)
	}
	if v, ok, err := s.Get(ctx, "token"); err != nil || !ok || v != "t2" {
		t.Fatalf("get = %q,%v,%v", v, ok, err)
	}

	if err := os.WriteFile(path, []byte("[]"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := s.RemoveAll(ctx, "token", "user"); err != nil {
		t.Fatalf("remove after corrupt file: %v", err)
	}
}

func TestSessionStore_RecoversFromCorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "session.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
		t.Fatal(err)
	}
	backend := NewSessionBackend(path, nil)

	store := session.NewStore(backend.Scope("default"), nil, nil)
	if err := store.Hydrate(ctx); err != nil {
		t.Fatalf("hydrate: %v", err)
	}
	if store.IsAuthenticated() {
		t.Fatal("corrupt file must count as no session")
	}

	admin := users.User{ID: "1", Name: "Ada", Email: "ada@example.com", Role: users.RoleAdmin}
	if err := store.Login(ctx, "tok", admin); err != nil {
		t.Fatalf("login: %v", err)
	}

	again := session.NewStore(backend.Scope("default"), nil, nil)
	if err := again.Hydrate(ctx); err != nil || !again.IsAuthenticated() {
		t.Fatalf("rehydrate = %v, authenticated %v", err, again.IsAuthenticated())
	}
	if err := again.Logout(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
}
