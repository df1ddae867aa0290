package dashboardapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/ports/dashboard"
)

type staticAuth string

func (s staticAuth) BearerToken(context.Context) string { return string(s) }
func (s staticAuth) Unauthorized(context.Context)       {}

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	hc, err := httpclient.NewWithBaseURL(ts.URL, time.Second)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}
	return NewClient(hc)
}

func TestLogin_AcceptsTokenVariants(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != LoginPath || r.Method != http.MethodPost {
			t.Errorf("unexpected %s %s", r.Method, r.URL.Path)
		}
		var body loginRequest
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Email != "admin@example.com" || body.Password != "secret" {
			t.Errorf("unexpected body %+v", body)
		}
		_, _ = w.Write([]byte(`{"access_token":"jwt-1","user":{"id":1,"name":"Admin","email":"admin@example.com","role":"admin"}}`))
	})

	token, u, err := c.Login(context.Background(), " admin@example.com ", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token != "jwt-1" {
		t.Fatalf("unexpected token %q", token)
	}
	if u.ID != "1" || u.Role != users.RoleAdmin {
		t.Fatalf("unexpected user %+v", u)
	}
}

func TestLogin_InvalidCredentials(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"Credenciales inválidas"}`))
	})

	_, _, err := c.Login(context.Background(), "a@b.c", "bad")
	if !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if got := httpclient.MessageOf(err, ""); got != "Credenciales inválidas" {
		t.Fatalf("expected backend message to survive wrapping, got %q", got)
	}
}

func TestLogin_MissingToken(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"user":{"id":"u1","role":"admin"}}`))
	})

	if _, _, err := c.Login(context.Background(), "a@b.c", "x"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream, got %v", err)
	}
}

func TestUsersLister(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != UsersPath {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer")
		}
		if r.URL.Query().Get("search") != "mar" || r.URL.Query().Get("limit") != "10" {
			t.Errorf("unexpected query %s", r.URL.RawQuery)
		}
		_, _ = w.Write([]byte(`{"data":[{"id":"1","name":"Mariana","role":"medico"}],"total":11,"page":2,"limit":10}`))
	})

	env, err := c.Users(staticAuth("tok")).List(context.Background(), dashboard.Query{Page: 2, Limit: 10, Search: " mar"})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(env.Data) != 1 || env.Data[0].Name != "Mariana" {
		t.Fatalf("unexpected data %+v", env.Data)
	}
	if env.TotalPages != 2 {
		t.Fatalf("expected totalPages recomputed to 2, got %d", env.TotalPages)
	}
}
