package web

import (
	"net/http"
	"strconv"
	"strings"
)

// ListParams son los parámetros de URL de un listado.
type ListParams struct {
	Page     int
	Search   string
	Selected string
}

// ParseListParams lee ?page=&search=&selected=. page inválida = 1.
func ParseListParams(r *http.Request) ListParams {
	q := r.URL.Query()
	p := ListParams{
		Page:     1,
		Search:   strings.TrimSpace(q.Get("search")),
		Selected: strings.TrimSpace(q.Get("selected")),
	}
	if n, err := strconv.Atoi(q.Get("page")); err == nil && n > 0 {
		p.Page = n
	}
	return p
}
