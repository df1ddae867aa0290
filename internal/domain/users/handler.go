package users

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"nutri-admin/internal/listing"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
	"nutri-admin/internal/web"
)

const (
	ListPath = "/users"

	msgLoadError = "No se pudieron cargar los usuarios."
	msgNoRecords = "Aún no hay usuarios registrados."
)

// ListerFor devuelve el lister autenticado con la sesión del request.
type ListerFor func(r *http.Request) dashboard.Lister[User]

func RegisterRoutes(r chi.Router, listerFor ListerFor, view *web.Renderer, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	r.Method(http.MethodGet, ListPath, &web.ListPage[User]{
		Path:         ListPath,
		Template:     "users",
		Title:        "Usuarios",
		Lister:       listerFor,
		Key:          Key,
		ErrorMessage: msgLoadError,
		Logger:       log,
		View:         view,
		Build:        func(st listing.State[User]) any { return buildListView(st) },
	})
}

type userRow struct {
	URL       string
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

type userDetail struct {
	ID        string
	Name      string
	Email     string
	Role      string
	CreatedAt string
}

type listView struct {
	Search    string
	Error     string
	Empty     string
	EmptyKind listing.EmptyKind
	Rows      []userRow
	Pager     web.Pager
	Detail    *userDetail
	CloseURL  string
}

func buildListView(st listing.State[User]) listView {
	v := listView{
		Search:    st.Search,
		Error:     st.Err,
		EmptyKind: st.Empty(),
		Rows:      make([]userRow, 0, len(st.Items)),
		Pager:     web.NewPager(ListPath, st.Page, st.TotalPages, st.Total, st.Search),
		CloseURL:  web.ListURL(ListPath, st.Page, st.Search, ""),
	}

	switch v.EmptyKind {
	case listing.EmptyNoRecords:
		v.Empty = msgNoRecords
	case listing.EmptyNoResults:
		v.Empty = fmt.Sprintf("No se encontraron usuarios para %q.", st.Search)
	}

	for _, u := range st.Items {
		v.Rows = append(v.Rows, userRow{
			URL:       web.ListURL(ListPath, st.Page, st.Search, Key(u)),
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role.Label(),
			CreatedAt: formatDate(u),
		})
	}

	if u := st.Selected; u != nil {
		v.Detail = &userDetail{
			ID:        u.ID.String(),
			Name:      u.Name,
			Email:     u.Email,
			Role:      u.Role.Label(),
			CreatedAt: formatDate(*u),
		}
	}
	return v
}

func formatDate(u User) string {
	if u.CreatedAt.IsZero() {
		return "—"
	}
	return u.CreatedAt.Format("02/01/2006")
}
