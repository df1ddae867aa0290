package dashboard

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit es el tamaño de página fijo de los listados del panel.
const DefaultLimit = 10

// ID es el identificador que manda el backend. Puede llegar como string
// o como número según la entidad; lo guardamos siempre como string.
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(strings.TrimSpace(s))
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("dashboard: invalid id %s", string(b))
	}
	*id = ID(n.String())
	return nil
}

func (id ID) String() string { return string(id) }

// Query son los parámetros de un listado paginado.
type Query struct {
	Page   int
	Limit  int
	Search string
}

// Values arma la query string. search solo se agrega si no queda vacío
// después de recortar espacios.
func (q Query) Values() url.Values {
	page := q.Page
	if page < 1 {
		page = 1
	}
	limit := q.Limit
	if limit < 1 {
		limit = DefaultLimit
	}

	v := url.Values{}
	v.Set("page", strconv.Itoa(page))
	v.Set("limit", strconv.Itoa(limit))
	if s := strings.TrimSpace(q.Search); s != "" {
		v.Set("search", s)
	}
	return v
}

// Envelope es la respuesta paginada del backend.
type Envelope[T any] struct {
	Data       []T `json:"data"`
	Total      int `json:"total"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalPages int `json:"totalPages"`
}

// Normalize completa campos ausentes y recalcula TotalPages como
// ceil(Total/Limit). requested es la query que originó la respuesta.
func (e Envelope[T]) Normalize(requested Query) Envelope[T] {
	if e.Data == nil {
		e.Data = []T{}
	}
	if e.Total < 0 {
		e.Total = 0
	}
	if e.Limit < 1 {
		e.Limit = requested.Limit
	}
	if e.Limit < 1 {
		e.Limit = DefaultLimit
	}
	if e.Page < 1 {
		e.Page = requested.Page
	}
	if e.Page < 1 {
		e.Page = 1
	}
	e.TotalPages = TotalPages(e.Total, e.Limit)
	return e
}

// TotalPages = ceil(total/limit); 0 si no hay registros.
func TotalPages(total, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return (total + limit - 1) / limit
}
