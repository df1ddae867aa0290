package web

import (
	"net/url"
	"strconv"
	"strings"
)

// Pager son los controles de paginación de un listado.
// Los botones se deshabilitan fuera de [1, TotalPages].
type Pager struct {
	Page       int
	TotalPages int
	Total      int
	HasPrev    bool
	HasNext    bool
	PrevURL    string
	NextURL    string
}

func NewPager(base string, page, totalPages, total int, search string) Pager {
	p := Pager{
		Page:       page,
		TotalPages: totalPages,
		Total:      total,
		HasPrev:    page > 1 && totalPages > 0,
		HasNext:    page < totalPages,
	}
	if p.HasPrev {
		p.PrevURL = ListURL(base, page-1, search, "")
	}
	if p.HasNext {
		p.NextURL = ListURL(base, page+1, search, "")
	}
	return p
}

// ListURL arma la URL de un listado conservando búsqueda y selección.
func ListURL(base string, page int, search, selected string) string {
	q := url.Values{}
	if page > 1 {
		q.Set("page", strconv.Itoa(page))
	}
	if s := strings.TrimSpace(search); s != "" {
		q.Set("search", s)
	}
	if selected != "" {
		q.Set("selected", selected)
	}
	if len(q) == 0 {
		return base
	}
	return base + "?" + q.Encode()
}
