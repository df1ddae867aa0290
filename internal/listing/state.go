package listing

import "strings"

// EmptyKind distingue los estados vacíos del listado.
type EmptyKind string

const (
	EmptyNone      EmptyKind = ""
	EmptyNoRecords EmptyKind = "no-records"
	EmptyNoResults EmptyKind = "no-results"
)

// State es lo que se muestra del listado.
type State[T any] struct {
	Items      []T
	Total      int
	Page       int
	Limit      int
	TotalPages int
	Search     string
	Loading    bool
	Err        string
	Selected   *T
}

// Empty sólo aplica cuando no hubo error: con error se muestra el banner.
func (s State[T]) Empty() EmptyKind {
	if s.Loading || s.Err != "" || len(s.Items) > 0 {
		return EmptyNone
	}
	if strings.TrimSpace(s.Search) != "" {
		return EmptyNoResults
	}
	return EmptyNoRecords
}

func (s State[T]) HasPrev() bool { return s.Page > 1 && s.TotalPages > 0 }
func (s State[T]) HasNext() bool { return s.Page < s.TotalPages }
