package children

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"nutri-admin/internal/listing"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
	"nutri-admin/internal/web"
)

const (
	ListPath = "/children"

	msgLoadError = "No se pudieron cargar los niños."
	msgNoRecords = "Aún no hay niños registrados."
)

type ListerFor func(r *http.Request) dashboard.Lister[Child]

func RegisterRoutes(r chi.Router, listerFor ListerFor, view *web.Renderer, log logger.Logger) {
	if log == nil {
		log = logger.Nop()
	}
	h := &listHandler{now: time.Now}
	r.Method(http.MethodGet, ListPath, &web.ListPage[Child]{
		Path:         ListPath,
		Template:     "children",
		Title:        "Niños",
		Lister:       listerFor,
		Key:          Key,
		ErrorMessage: msgLoadError,
		Logger:       log,
		View:         view,
		Build:        func(st listing.State[Child]) any { return h.buildListView(st) },
	})
}

type childRow struct {
	URL        string
	Name       string
	Age        string
	Gender     string
	Weight     string
	Height     string
	MotherName string
}

type childDetail struct {
	ID          string
	Name        string
	BirthDate   string
	Age         string
	Gender      string
	Weight      string
	Height      string
	MotherName  string
	MotherEmail string
}

type listView struct {
	Search    string
	Error     string
	Empty     string
	EmptyKind listing.EmptyKind
	Rows      []childRow
	Pager     web.Pager
	Detail    *childDetail
	CloseURL  string
}

// listHandler arma la vista; now se fija en tests para las edades.
type listHandler struct {
	now func() time.Time
}

func (h *listHandler) buildListView(st listing.State[Child]) listView {
	now := h.now()
	v := listView{
		Search:    st.Search,
		Error:     st.Err,
		EmptyKind: st.Empty(),
		Rows:      make([]childRow, 0, len(st.Items)),
		Pager:     web.NewPager(ListPath, st.Page, st.TotalPages, st.Total, st.Search),
		CloseURL:  web.ListURL(ListPath, st.Page, st.Search, ""),
	}

	switch v.EmptyKind {
	case listing.EmptyNoRecords:
		v.Empty = msgNoRecords
	case listing.EmptyNoResults:
		v.Empty = fmt.Sprintf("No se encontraron niños para %q.", st.Search)
	}

	for _, c := range st.Items {
		v.Rows = append(v.Rows, childRow{
			URL:        web.ListURL(ListPath, st.Page, st.Search, Key(c)),
			Name:       c.Name,
			Age:        AgeLabel(c.BirthDate.Time, now),
			Gender:     GenderLabel(c.Gender),
			Weight:     Measure(c.Weight, "kg"),
			Height:     Measure(c.Height, "cm"),
			MotherName: OrDash(c.Mother.Name),
		})
	}

	if c := st.Selected; c != nil {
		birth := "—"
		if !c.BirthDate.IsZero() {
			birth = c.BirthDate.Format("02/01/2006")
		}
		v.Detail = &childDetail{
			ID:          c.ID.String(),
			Name:        c.Name,
			BirthDate:   birth,
			Age:         AgeLabel(c.BirthDate.Time, now),
			Gender:      GenderLabel(c.Gender),
			Weight:      Measure(c.Weight, "kg"),
			Height:      Measure(c.Height, "cm"),
			MotherName:  OrDash(c.Mother.Name),
			MotherEmail: OrDash(c.Mother.Email),
		}
	}
	return v
}
