package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	mem "nutri-admin/internal/adapters/storage/memory"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/web"
)

func TestSession_IssuesCookieAndStore(t *testing.T) {
	backend := mem.NewSessionBackend()
	var gotStore, gotNav bool
	h := Session(backend, CookieOptions{Name: "sid"}, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, gotStore = session.FromContext(r.Context())
		gotNav = web.NavigationFrom(r.Context()) != nil
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	if !gotStore || !gotNav {
		t.Fatalf("store=%v nav=%v", gotStore, gotNav)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "sid" || !cookies[0].HttpOnly {
		t.Fatalf("unexpected cookies %+v", cookies)
	}
}

func TestSession_ReusesValidCookieAndHydrates(t *testing.T) {
	backend := mem.NewSessionBackend()
	id := "0b5c2a6e-8f0e-4b6f-9a0c-3f1e2d4c5b6a"
	_ = backend.Scope(id).SetAll(context.Background(), map[string]string{
		session.KeyToken: "tok",
		session.KeyUser:  `{"id":"1","name":"Ada","role":"admin"}`,
	})

	var viewer string
	h := Session(backend, CookieOptions{Name: "sid"}, nil)(Guard(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		viewer = web.Viewer(r.Context())
	})))

	req := httptest.NewRequest(http.MethodGet, "/children", nil)
	req.AddCookie(&http.Cookie{Name: "sid", Value: id})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || viewer != "Ada" {
		t.Fatalf("code=%d viewer=%q", rec.Code, viewer)
	}
	if len(rec.Result().Cookies()) != 0 {
		t.Fatal("valid cookie must not be reissued")
	}
}

func TestSession_InvalidCookieIsReplaced(t *testing.T) {
	h := Session(mem.NewSessionBackend(), CookieOptions{}, nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: defaultCookieName, Value: "../../etc"})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Value == "../../etc" {
		t.Fatalf("expected a fresh cookie, got %+v", cookies)
	}
}

func TestGuard_RedirectsAnonymous(t *testing.T) {
	h := Session(mem.NewSessionBackend(), CookieOptions{}, nil)(Guard(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))
	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != session.LoginPath {
		t.Fatalf("code=%d location=%q", rec.Code, rec.Header().Get("Location"))
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, session.LoginPath, nil))
	if rec.Code != http.StatusTeapot {
		t.Fatalf("login must be reachable, code=%d", rec.Code)
	}
}
