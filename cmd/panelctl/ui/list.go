package ui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nutri-admin/internal/listing"
)

type listFetchedMsg struct {
	path string
	err  error
}

// field es una fila del panel de detalle.
type field struct {
	label string
	value string
}

// listModel es la pantalla de un listado paginado. El estado real vive en
// el controller; acá solo está lo visual (tabla, input de búsqueda).
type listModel[T any] struct {
	path    string
	title   string
	noun    string
	ctrl    *listing.Controller[T]
	key     func(T) string
	row     func(T) table.Row
	detail  func(T) []field
	timeout time.Duration

	search textinput.Model
	table  table.Model
}

func newListModel[T any](path, title, noun string, ctrl *listing.Controller[T], key func(T) string, cols []table.Column, row func(T) table.Row, detail func(T) []field, timeout time.Duration) listModel[T] {
	in := textinput.New()
	in.Prompt = "Buscar: "
	in.Placeholder = "nombre o email"
	in.CharLimit = 80
	in.Width = 40
	in.Focus()

	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	return listModel[T]{
		path:    path,
		title:   title,
		noun:    noun,
		ctrl:    ctrl,
		key:     key,
		row:     row,
		detail:  detail,
		timeout: timeout,
		search:  in,
		table:   t,
	}
}

func (m listModel[T]) run(fn func(ctx context.Context) error) tea.Cmd {
	path, timeout := m.path, m.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return listFetchedMsg{path: path, err: fn(ctx)}
	}
}

// open pide la página 1 con la búsqueda actual.
func (m listModel[T]) open() tea.Cmd {
	search := m.search.Value()
	return m.run(func(ctx context.Context) error {
		return m.ctrl.Fetch(ctx, 1, search)
	})
}

func (m listModel[T]) page(delta int) tea.Cmd {
	st := m.ctrl.State()
	target := st.Page + delta
	if target < 1 || target > st.TotalPages {
		return nil
	}
	return m.run(func(ctx context.Context) error {
		_, err := m.ctrl.ChangePage(ctx, target)
		return err
	})
}

// refresh pasa el estado del controller a la tabla.
func (m listModel[T]) refresh() listModel[T] {
	st := m.ctrl.State()
	rows := make([]table.Row, 0, len(st.Items))
	for _, it := range st.Items {
		rows = append(rows, m.row(it))
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(0)
	}
	return m
}

// update devuelve back=true cuando esc sale del listado.
func (m listModel[T]) update(msg tea.KeyMsg) (listModel[T], tea.Cmd, bool) {
	switch msg.String() {
	case "esc":
		if m.ctrl.State().Selected != nil {
			m.ctrl.ClearSelection()
			return m, nil, false
		}
		return m, nil, true
	case "left":
		return m, m.page(-1), false
	case "right":
		return m, m.page(1), false
	case "up":
		m.table.MoveUp(1)
		return m, nil, false
	case "down":
		m.table.MoveDown(1)
		return m, nil, false
	case "enter":
		st := m.ctrl.State()
		if i := m.table.Cursor(); i >= 0 && i < len(st.Items) {
			m.ctrl.Select(m.key(st.Items[i]))
		}
		return m, nil, false
	}

	prev := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() == prev {
		return m, cmd, false
	}
	// Sin debounce: cada tecla pide la página 1.
	term := m.search.Value()
	return m, tea.Batch(cmd, m.run(func(ctx context.Context) error {
		return m.ctrl.ChangeSearch(ctx, term)
	})), false
}

func (m listModel[T]) view(s Styles) string {
	st := m.ctrl.State()

	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n")
	b.WriteString(m.search.View())
	b.WriteString("\n\n")

	if st.Err != "" {
		b.WriteString(s.Error.Render(st.Err))
		b.WriteString("\n\n")
	}

	switch st.Empty() {
	case listing.EmptyNoRecords:
		b.WriteString(s.Subtitle.Render(fmt.Sprintf("Aún no hay %s registrados.", m.noun)))
	case listing.EmptyNoResults:
		b.WriteString(s.Subtitle.Render(fmt.Sprintf("No se encontraron %s para %q.", m.noun, st.Search)))
	default:
		b.WriteString(m.table.View())
	}
	b.WriteString("\n")

	status := fmt.Sprintf("Página %d de %d · %d registros", st.Page, st.TotalPages, st.Total)
	if st.Loading {
		status += " · cargando…"
	}
	b.WriteString(s.Subtitle.Render(status))
	b.WriteString("\n")

	if sel := st.Selected; sel != nil {
		var d strings.Builder
		for i, f := range m.detail(*sel) {
			if i > 0 {
				d.WriteString("\n")
			}
			d.WriteString(s.Label.Render(f.label))
			d.WriteString(f.value)
		}
		b.WriteString(s.Detail.Render(d.String()))
		b.WriteString("\n")
	}

	b.WriteString(s.Help.Render("escribir busca · ←/→ página · ↑/↓ mueve · enter detalle · esc cierra/vuelve"))
	return b.String()
}
