package web

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutri-admin/internal/listing"
	"nutri-admin/internal/ports/dashboard"
)

type item struct {
	ID   string
	Name string
}

// La página usa el template de login: Email muestra el seleccionado y
// Message un resumen del estado.
type itemView struct {
	Email   string
	Message string
}

func newItemPage(fn dashboard.ListerFunc[item]) *ListPage[item] {
	return &ListPage[item]{
		Path:     "/items",
		Template: "login",
		Title:    "Items",
		Lister:   func(*http.Request) dashboard.Lister[item] { return fn },
		Key:      func(i item) string { return i.ID },
		View:     MustRenderer(),
		Build: func(st listing.State[item]) any {
			v := itemView{Message: st.Err}
			if st.Selected != nil {
				v.Email = st.Selected.Name
			}
			return v
		},
	}
}

func twoPages(_ context.Context, q dashboard.Query) (dashboard.Envelope[item], error) {
	return dashboard.Envelope[item]{
		Data:  []item{{"1", "Ana"}, {"2", "Beto"}},
		Total: 15,
		Page:  q.Page,
		Limit: q.Limit,
	}, nil
}

func TestListPage_PastLastPageRedirects(t *testing.T) {
	page := newItemPage(twoPages)

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?page=5&search=ana", nil))

	if rec.Code != http.StatusSeeOther {
		t.Fatalf("status = %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/items?page=2&search=ana" {
		t.Fatalf("location = %q", loc)
	}
}

func TestListPage_RendersSelection(t *testing.T) {
	page := newItemPage(twoPages)

	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items?selected=2", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `value="Beto"`) {
		t.Fatalf("selected row not rendered:\n%s", rec.Body.String())
	}
}

func TestListPage_FollowsSessionRedirect(t *testing.T) {
	nav := NewNavigation("/items")
	page := newItemPage(func(context.Context, dashboard.Query) (dashboard.Envelope[item], error) {
		// Así reacciona la sesión ante un 401.
		nav.Navigate("/login")
		return dashboard.Envelope[item]{}, errors.New("unauthorized")
	})

	req := httptest.NewRequest(http.MethodGet, "/items", nil)
	req = req.WithContext(WithNavigation(req.Context(), nav))
	rec := httptest.NewRecorder()
	page.ServeHTTP(rec, req)

	if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
		t.Fatalf("got %d -> %q", rec.Code, rec.Header().Get("Location"))
	}
}
