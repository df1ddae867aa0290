// Package listing implementa el controlador genérico de listados paginados
// que comparten las páginas de usuarios y de niños.
package listing

import (
	"context"
	"strings"
	"sync"

	"nutri-admin/internal/platform/httpclient"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
)

const defaultErrorMessage = "No se pudieron cargar los registros."

// Options configura un Controller.
type Options[T any] struct {
	// Key identifica una fila para la selección.
	Key func(T) string
	// Limit por página; por defecto dashboard.DefaultLimit.
	Limit int
	// ErrorMessage se muestra cuando el payload de error no trae mensaje.
	ErrorMessage string
	Logger       logger.Logger
}

// Controller mantiene el estado de un listado: página actual, búsqueda,
// filas y selección.
//
// Cada Fetch cancela el request anterior y sólo la respuesta del último
// puede escribir el estado; las respuestas viejas se descartan.
type Controller[T any] struct {
	lister dashboard.Lister[T]
	key    func(T) string
	limit  int
	errMsg string
	log    logger.Logger

	mu       sync.Mutex
	state    State[T]
	seq      uint64
	cancel   context.CancelFunc
	selected string
}

func New[T any](lister dashboard.Lister[T], opts Options[T]) *Controller[T] {
	limit := opts.Limit
	if limit < 1 {
		limit = dashboard.DefaultLimit
	}
	msg := strings.TrimSpace(opts.ErrorMessage)
	if msg == "" {
		msg = defaultErrorMessage
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Controller[T]{
		lister: lister,
		key:    opts.Key,
		limit:  limit,
		errMsg: msg,
		log:    log,
		state: State[T]{
			Items: []T{},
			Page:  1,
			Limit: limit,
		},
	}
}

// Fetch pide la página page con la búsqueda search. El error queda también en
// el estado como mensaje para el usuario; se devuelve para que el caller
// pueda loguear o reaccionar. Una respuesta que llega tarde devuelve nil.
func (c *Controller[T]) Fetch(ctx context.Context, page int, search string) error {
	if page < 1 {
		page = 1
	}

	c.mu.Lock()
	if c.cancel != nil {
		c.cancel()
	}
	c.seq++
	seq := c.seq
	reqCtx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.state.Loading = true
	c.state.Search = search
	c.mu.Unlock()

	q := dashboard.Query{Page: page, Limit: c.limit, Search: search}
	env, err := c.lister.List(reqCtx, q)

	c.mu.Lock()
	defer c.mu.Unlock()

	cancel()
	if seq != c.seq {
		// Llegó tarde: ya hay un request más nuevo.
		c.log.Debug("discarding stale list response", map[string]any{"seq": seq, "latest": c.seq})
		return nil
	}
	c.cancel = nil
	c.state.Loading = false

	if err != nil {
		c.log.Warn("list fetch failed", map[string]any{"page": page, "error": err.Error()})
		c.state.Err = httpclient.MessageOf(err, c.errMsg)
		c.state.Items = []T{}
		c.state.Total = 0
		c.state.TotalPages = 0
		c.selected = ""
		return err
	}

	env = env.Normalize(q)
	c.state.Err = ""
	c.state.Items = env.Data
	c.state.Total = env.Total
	c.state.Page = env.Page
	c.state.Limit = env.Limit
	c.state.TotalPages = env.TotalPages
	if c.selected != "" && !c.containsLocked(c.selected) {
		c.selected = ""
	}
	return nil
}

// ChangePage no hace nada si page está fuera de [1, TotalPages].
// Devuelve false cuando no hubo fetch.
func (c *Controller[T]) ChangePage(ctx context.Context, page int) (bool, error) {
	c.mu.Lock()
	total := c.state.TotalPages
	search := c.state.Search
	c.mu.Unlock()

	if page < 1 || page > total {
		return false, nil
	}
	return true, c.Fetch(ctx, page, search)
}

// ChangeSearch actualiza el término y pide la página 1 sin debounce.
func (c *Controller[T]) ChangeSearch(ctx context.Context, term string) error {
	return c.Fetch(ctx, 1, term)
}

// Reload repite la página y búsqueda actuales.
func (c *Controller[T]) Reload(ctx context.Context) error {
	c.mu.Lock()
	page, search := c.state.Page, c.state.Search
	c.mu.Unlock()
	return c.Fetch(ctx, page, search)
}

// Select abre el detalle de una fila de la página actual.
func (c *Controller[T]) Select(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id == "" || !c.containsLocked(id) {
		return false
	}
	c.selected = id
	return true
}

func (c *Controller[T]) ClearSelection() {
	c.mu.Lock()
	c.selected = ""
	c.mu.Unlock()
}

// Close cancela un request en vuelo. La vista se descarta después.
func (c *Controller[T]) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}

// State devuelve una copia del estado.
func (c *Controller[T]) State() State[T] {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	st.Items = append([]T(nil), c.state.Items...)
	if st.Items == nil {
		st.Items = []T{}
	}
	st.Selected = nil
	if c.selected != "" {
		for _, it := range c.state.Items {
			if c.key(it) == c.selected {
				item := it
				st.Selected = &item
				break
			}
		}
	}
	return st
}

func (c *Controller[T]) containsLocked(id string) bool {
	if c.key == nil {
		return false
	}
	for _, it := range c.state.Items {
		if c.key(it) == id {
			return true
		}
	}
	return false
}
