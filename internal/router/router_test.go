package router_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"nutri-admin/internal/adapters/dashboardapi"
	mem "nutri-admin/internal/adapters/storage/memory"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/middleware"
	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/router"
)

const cookieName = "panel_session"

// fakeAPI simula el backend REST: login, usuarios y niños.
type fakeAPI struct {
	loginRole string
	revoked   atomic.Bool

	mu       sync.Mutex
	requests []*http.Request
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.requests = append(f.requests, r.Clone(context.Background()))
	f.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")

	if r.URL.Path == dashboardapi.LoginPath {
		var body struct {
			Email    string `json:"email"`
			Password string `json:"password"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"message":"Credenciales inválidas"}`)
			return
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"token": "tok-1",
			"user":  map[string]any{"id": 1, "name": "Ada", "email": body.Email, "role": f.loginRole},
		})
		return
	}

	if f.revoked.Load() || r.Header.Get("Authorization") != "Bearer tok-1" {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, `{"message":"Unauthorized"}`)
		return
	}

	switch r.URL.Path {
	case dashboardapi.UsersPath:
		if r.URL.Query().Get("search") == "mar" {
			_, _ = io.WriteString(w, `{"data":[],"total":0,"page":1,"limit":10,"totalPages":0}`)
			return
		}
		_, _ = io.WriteString(w, `{"data":[
			{"id":1,"name":"Ada","email":"ada@example.com","role":"admin","createdAt":"2026-01-02T10:00:00Z"},
			{"id":2,"name":"Mario","email":"mario@example.com","role":"medico","createdAt":"2026-01-03T10:00:00Z"},
			{"id":3,"name":"Paula","email":"paula@example.com","role":"paciente","createdAt":"2026-01-04T10:00:00Z"}
		],"total":3,"page":1,"limit":10,"totalPages":1}`)
	case dashboardapi.ChildrenPath:
		_, _ = io.WriteString(w, `{"data":[
			{"id":"c1","name":"Lucía","birthDate":"2025-03-01","gender":"f","weight":9.5,"height":75,"mother":{"id":5,"name":"Marta","email":"marta@example.com"}}
		],"total":1,"page":1,"limit":10}`)
	default:
		http.NotFound(w, r)
	}
}

func (f *fakeAPI) listCalls() []*http.Request {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*http.Request
	for _, r := range f.requests {
		if r.URL.Path != dashboardapi.LoginPath {
			out = append(out, r)
		}
	}
	return out
}

type panel struct {
	url      string
	client   *http.Client
	api      *fakeAPI
	sessions *mem.SessionBackend
}

func newPanel(t *testing.T, role string) *panel {
	t.Helper()

	api := &fakeAPI{loginRole: role}
	apiSrv := httptest.NewServer(api)
	t.Cleanup(apiSrv.Close)

	hc, err := httpclient.NewWithBaseURL(apiSrv.URL, 2*time.Second)
	if err != nil {
		t.Fatalf("httpclient: %v", err)
	}

	sessions := mem.NewSessionBackend()
	ts := httptest.NewServer(router.NewRouter(router.Options{
		API:      dashboardapi.NewClient(hc),
		Sessions: sessions,
		Cookie:   middleware.CookieOptions{Name: cookieName},
	}))
	t.Cleanup(ts.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar: %v", err)
	}
	return &panel{
		url: ts.URL,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
		api:      api,
		sessions: sessions,
	}
}

func (p *panel) get(t *testing.T, path string) (int, string, string) {
	t.Helper()
	resp, err := p.client.Get(p.url + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (p *panel) post(t *testing.T, path string, form url.Values) (int, string, string) {
	t.Helper()
	resp, err := p.client.PostForm(p.url+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, resp.Header.Get("Location"), string(body)
}

func (p *panel) login(t *testing.T) {
	t.Helper()
	st, loc, body := p.post(t, session.LoginPath, url.Values{"email": {"ada@example.com"}, "password": {"secret"}})
	if st != http.StatusSeeOther || loc != session.HomePath {
		t.Fatalf("expected redirect home after login, got %d %q body=%s", st, loc, body)
	}
}

func (p *panel) sessionID(t *testing.T) string {
	t.Helper()
	u, _ := url.Parse(p.url)
	for _, c := range p.client.Jar.Cookies(u) {
		if c.Name == cookieName {
			return c.Value
		}
	}
	t.Fatal("session cookie not set")
	return ""
}

func TestHTTP_Health(t *testing.T) {
	p := newPanel(t, "admin")
	if st, _, body := p.get(t, "/health"); st != http.StatusOK || body != "ok" {
		t.Fatalf("health = %d %q", st, body)
	}
}

func TestHTTP_AnonymousIsSentToLogin(t *testing.T) {
	p := newPanel(t, "admin")

	for _, path := range []string{"/", "/users", "/children", "/nutrition"} {
		st, loc, _ := p.get(t, path)
		if st != http.StatusSeeOther || loc != session.LoginPath {
			t.Fatalf("GET %s: expected redirect to login, got %d %q", path, st, loc)
		}
	}
	if st, _, _ := p.get(t, session.LoginPath); st != http.StatusOK {
		t.Fatalf("login page = %d", st)
	}
	if n := len(p.api.listCalls()); n != 0 {
		t.Fatalf("backend must not be called, got %d calls", n)
	}
}

func TestHTTP_AdminListsUsers(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)

	// Con sesión, /login vuelve al inicio.
	if st, loc, _ := p.get(t, session.LoginPath); st != http.StatusSeeOther || loc != session.HomePath {
		t.Fatalf("login with session: %d %q", st, loc)
	}

	st, _, body := p.get(t, "/users")
	if st != http.StatusOK {
		t.Fatalf("users = %d body=%s", st, body)
	}
	if n := strings.Count(body, `class="row"`); n != 3 {
		t.Fatalf("expected 3 rows, got %d", n)
	}
	if !strings.Contains(body, "<button disabled>Anterior</button>") || !strings.Contains(body, "<button disabled>Siguiente</button>") {
		t.Fatal("both pagination buttons must be disabled")
	}
	if !strings.Contains(body, "Página 1 de 1") {
		t.Fatal("expected page indicator")
	}

	calls := p.api.listCalls()
	if len(calls) != 1 {
		t.Fatalf("expected one list call, got %d", len(calls))
	}
	q := calls[0].URL.Query()
	if q.Get("page") != "1" || q.Get("limit") != "10" || q.Has("search") {
		t.Fatalf("unexpected query %v", q)
	}
}

func TestHTTP_SearchWithoutResults(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)

	st, _, body := p.get(t, "/users?search=mar")
	if st != http.StatusOK {
		t.Fatalf("users = %d", st)
	}
	if !strings.Contains(body, `data-empty="no-results"`) || !strings.Contains(body, "No se encontraron usuarios") {
		t.Fatalf("expected no-results state, body=%s", body)
	}
	if strings.Contains(body, `class="row"`) {
		t.Fatal("no rows expected")
	}
}

func TestHTTP_SelectedRowOpensDetail(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)

	_, _, body := p.get(t, "/children?selected=c1")
	if !strings.Contains(body, `class="detail"`) || !strings.Contains(body, "marta@example.com") {
		t.Fatalf("expected detail panel, body=%s", body)
	}

	_, _, body = p.get(t, "/children?selected=missing")
	if strings.Contains(body, `class="detail"`) {
		t.Fatal("unknown id must not open the detail")
	}
}

func TestHTTP_UnauthorizedClearsSessionAndRedirectsOnce(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)
	id := p.sessionID(t)

	p.api.revoked.Store(true)

	st, loc, _ := p.get(t, "/children")
	if st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("expected redirect to login after 401, got %d %q", st, loc)
	}
	if n := p.sessions.Len(id); n != 0 {
		t.Fatalf("both keys must be cleared, %d left", n)
	}

	before := len(p.api.listCalls())
	st, loc, _ = p.get(t, "/users")
	if st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("expected guard redirect, got %d %q", st, loc)
	}
	if after := len(p.api.listCalls()); after != before {
		t.Fatal("no backend call expected without session")
	}
}

func TestHTTP_NonAdminLoginIsRejected(t *testing.T) {
	p := newPanel(t, "medico")

	st, _, body := p.post(t, session.LoginPath, url.Values{"email": {"mario@example.com"}, "password": {"secret"}})
	if st != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", st)
	}
	if !strings.Contains(body, "Acceso denegado") {
		t.Fatalf("expected access denied message, body=%s", body)
	}
	if n := p.sessions.Len(p.sessionID(t)); n != 0 {
		t.Fatalf("nothing must be persisted, got %d keys", n)
	}
	if st, loc, _ := p.get(t, "/"); st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("expected unauthenticated, got %d %q", st, loc)
	}
}

func TestHTTP_InvalidCredentialsShowBackendMessage(t *testing.T) {
	p := newPanel(t, "admin")

	st, _, body := p.post(t, session.LoginPath, url.Values{"email": {"ada@example.com"}, "password": {"nope"}})
	if st != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", st)
	}
	if !strings.Contains(body, "Credenciales inválidas") || !strings.Contains(body, "ada@example.com") {
		t.Fatalf("expected message and email kept, body=%s", body)
	}
}

func TestHTTP_PersistedMedicoSessionIsDiscarded(t *testing.T) {
	p := newPanel(t, "admin")

	id := "7d5f7b0e-5a43-4a8e-9d7a-0f3c1d1b2a90"
	if err := p.sessions.Scope(id).SetAll(context.Background(), map[string]string{
		session.KeyToken: "tok-1",
		session.KeyUser:  `{"id":"2","name":"Mario","email":"mario@example.com","role":"medico"}`,
	}); err != nil {
		t.Fatalf("seed: %v", err)
	}
	u, _ := url.Parse(p.url)
	p.client.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: id, Path: "/"}})

	st, loc, _ := p.get(t, "/users")
	if st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", st, loc)
	}
	if n := p.sessions.Len(id); n != 0 {
		t.Fatalf("persisted medico session must be cleared, %d keys left", n)
	}
}

func TestHTTP_LogoutClearsSession(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)
	id := p.sessionID(t)

	st, loc, _ := p.post(t, session.LogoutPath, nil)
	if st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("logout = %d %q", st, loc)
	}
	if n := p.sessions.Len(id); n != 0 {
		t.Fatalf("session must be cleared, %d keys left", n)
	}
	if st, loc, _ := p.get(t, "/"); st != http.StatusSeeOther || loc != session.LoginPath {
		t.Fatalf("expected unauthenticated after logout, got %d %q", st, loc)
	}
}

func TestHTTP_NutritionLauncher(t *testing.T) {
	p := newPanel(t, "admin")
	p.login(t)

	st, _, body := p.get(t, "/nutrition")
	if st != http.StatusOK || !strings.Contains(body, "/nutrition/recipes") {
		t.Fatalf("nutrition = %d", st)
	}
	if st, _, _ := p.get(t, "/nutrition/foods"); st != http.StatusOK {
		t.Fatalf("section = %d", st)
	}
	if st, _, _ := p.get(t, "/nutrition/unknown"); st != http.StatusNotFound {
		t.Fatalf("unknown section = %d", st)
	}
}
