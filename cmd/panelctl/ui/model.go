// Package ui es la interfaz de terminal de panelctl: login, inicio con el
// lanzador, listados de usuarios y niños y el módulo de nutrición.
package ui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"nutri-admin/internal/domain/children"
	"nutri-admin/internal/domain/nutrition"
	"nutri-admin/internal/domain/session"
	"nutri-admin/internal/domain/users"
	"nutri-admin/internal/listing"
	"nutri-admin/internal/platform/logger"
	"nutri-admin/internal/ports/dashboard"
)

const msgSessionExpired = "La sesión expiró. Ingrese nuevamente."

// Deps es lo que la TUI necesita del resto de panelctl.
type Deps struct {
	Gateway  session.LoginGateway
	Store    *session.Store
	Nav      *Navigator
	Users    dashboard.Lister[users.User]
	Children dashboard.Lister[children.Child]
	Timeout  time.Duration
	Logger   logger.Logger
	Now      func() time.Time
}

type logoutMsg struct{ err error }

// Model es el modelo raíz; path indica la pantalla activa con las mismas
// rutas que el panel web.
type Model struct {
	deps   Deps
	styles Styles
	path   string

	login    loginModel
	home     menuModel
	catalog  menuModel
	users    listModel[users.User]
	children listModel[children.Child]

	width  int
	height int
}

func New(deps Deps) Model {
	if deps.Nav == nil {
		deps.Nav = NewNavigator()
	}
	if deps.Timeout <= 0 {
		deps.Timeout = 10 * time.Second
	}
	if deps.Logger == nil {
		deps.Logger = logger.Nop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	m := Model{
		deps:    deps,
		styles:  DefaultStyles(),
		login:   newLoginModel(),
		home:    menuModel{title: "Inicio", cards: nutrition.HomeCards()},
		catalog: menuModel{title: "Módulo de nutrición", cards: nutrition.CatalogCards()},
	}
	m.users = newUsersList(deps)
	m.children = newChildrenList(deps)

	m.path = session.HomePath
	if target, redirect := session.Guard(deps.Store.IsAuthenticated(), m.path); redirect {
		m.path = target
	}
	deps.Nav.setLocation(m.path)
	return m
}

// Path es la pantalla activa.
func (m Model) Path() string { return m.path }

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// goTo cambia de pantalla respetando la regla de redirección de la sesión.
func (m Model) goTo(path string) (Model, tea.Cmd) {
	if target, redirect := session.Guard(m.deps.Store.IsAuthenticated(), path); redirect {
		path = target
	}
	m.path = path
	m.deps.Nav.setLocation(path)

	switch path {
	case session.LoginPath:
		m.login = m.login.reset(m.login.message)
	case users.ListPath:
		m.users.ctrl.ClearSelection()
		return m, m.users.open()
	case children.ListPath:
		m.children.ctrl.ClearSelection()
		return m, m.children.open()
	case "/nutrition":
		m.catalog.open = nil
	}
	return m, nil
}

// followSession aplica una navegación pedida por la sesión (401 o logout).
func (m Model) followSession(message string) (Model, tea.Cmd, bool) {
	target, ok := m.deps.Nav.take()
	if !ok {
		return m, nil, false
	}
	m.login.message = message
	m, cmd := m.goTo(target)
	return m, cmd, true
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case loginResultMsg:
		if msg.err != nil {
			m.login = m.login.reset(loginError(msg.err))
			return m, nil
		}
		m.login.message = ""
		return m.goTo(session.HomePath)

	case logoutMsg:
		if msg.err != nil {
			m.deps.Logger.Error("logout", map[string]any{"error": msg.err.Error()})
		}
		if next, cmd, ok := m.followSession(""); ok {
			return next, cmd
		}
		return m.goTo(session.LoginPath)

	case listFetchedMsg:
		if next, cmd, ok := m.followSession(msgSessionExpired); ok {
			return next, cmd
		}
		switch msg.path {
		case users.ListPath:
			m.users = m.users.refresh()
		case children.ListPath:
			m.children = m.children.refresh()
		}
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.path {
	case session.LoginPath:
		var cmd tea.Cmd
		m.login, cmd = m.login.update(msg, m.deps)
		return m, cmd

	case session.HomePath:
		switch msg.String() {
		case "up", "k":
			m.home.move(-1)
		case "down", "j":
			m.home.move(1)
		case "enter":
			if c, ok := m.home.current(); ok {
				return m.goTo(c.Path)
			}
		case "l":
			return m, m.logout()
		case "q":
			return m, tea.Quit
		}
		return m, nil

	case "/nutrition":
		switch msg.String() {
		case "up", "k":
			m.catalog.move(-1)
		case "down", "j":
			m.catalog.move(1)
		case "enter":
			if c, ok := m.catalog.current(); ok {
				m.catalog.open = &c
			}
		case "esc":
			if m.catalog.open != nil {
				m.catalog.open = nil
				return m, nil
			}
			return m.goTo(session.HomePath)
		}
		return m, nil

	case users.ListPath:
		var (
			cmd  tea.Cmd
			back bool
		)
		m.users, cmd, back = m.users.update(msg)
		if back {
			return m.goTo(session.HomePath)
		}
		return m, cmd

	case children.ListPath:
		var (
			cmd  tea.Cmd
			back bool
		)
		m.children, cmd, back = m.children.update(msg)
		if back {
			return m.goTo(session.HomePath)
		}
		return m, cmd
	}
	return m, nil
}

func (m Model) logout() tea.Cmd {
	store, timeout := m.deps.Store, m.deps.Timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return logoutMsg{err: store.Logout(ctx)}
	}
}

func (m Model) View() string {
	switch m.path {
	case session.LoginPath:
		return m.login.view(m.styles)
	case users.ListPath:
		return m.users.view(m.styles)
	case children.ListPath:
		return m.children.view(m.styles)
	case "/nutrition":
		return m.catalog.view(m.styles, "", "↑/↓ mueve · enter abre · esc vuelve")
	default:
		header := ""
		if st := m.deps.Store.State(); st.User != nil {
			header = "Hola, " + st.User.Name
		}
		return m.home.view(m.styles, header, "↑/↓ mueve · enter abre · l cierra sesión · q sale")
	}
}

func newUsersList(deps Deps) listModel[users.User] {
	ctrl := listing.New(deps.Users, listing.Options[users.User]{
		Key:          users.Key,
		ErrorMessage: "No se pudieron cargar los usuarios.",
		Logger:       deps.Logger,
	})
	cols := []table.Column{
		{Title: "Nombre", Width: 24},
		{Title: "Email", Width: 30},
		{Title: "Rol", Width: 14},
		{Title: "Creado", Width: 12},
	}
	row := func(u users.User) table.Row {
		return table.Row{u.Name, u.Email, u.Role.Label(), createdAt(u)}
	}
	detail := func(u users.User) []field {
		return []field{
			{"ID", u.ID.String()},
			{"Nombre", u.Name},
			{"Email", u.Email},
			{"Rol", u.Role.Label()},
			{"Creado", createdAt(u)},
		}
	}
	return newListModel(users.ListPath, "Usuarios", "usuarios", ctrl, users.Key, cols, row, detail, deps.Timeout)
}

func newChildrenList(deps Deps) listModel[children.Child] {
	ctrl := listing.New(deps.Children, listing.Options[children.Child]{
		Key:          children.Key,
		ErrorMessage: "No se pudieron cargar los niños.",
		Logger:       deps.Logger,
	})
	cols := []table.Column{
		{Title: "Nombre", Width: 22},
		{Title: "Edad", Width: 10},
		{Title: "Género", Width: 10},
		{Title: "Peso", Width: 9},
		{Title: "Talla", Width: 9},
		{Title: "Madre", Width: 22},
	}
	now := deps.Now
	row := func(c children.Child) table.Row {
		return table.Row{
			c.Name,
			children.AgeLabel(c.BirthDate.Time, now()),
			children.GenderLabel(c.Gender),
			children.Measure(c.Weight, "kg"),
			children.Measure(c.Height, "cm"),
			children.OrDash(c.Mother.Name),
		}
	}
	detail := func(c children.Child) []field {
		birth := "—"
		if !c.BirthDate.IsZero() {
			birth = c.BirthDate.Format("02/01/2006")
		}
		return []field{
			{"ID", c.ID.String()},
			{"Nombre", c.Name},
			{"Nacimiento", birth},
			{"Edad", children.AgeLabel(c.BirthDate.Time, now())},
			{"Género", children.GenderLabel(c.Gender)},
			{"Peso", children.Measure(c.Weight, "kg")},
			{"Talla", children.Measure(c.Height, "cm")},
			{"Madre", children.OrDash(c.Mother.Name)},
			{"Email madre", children.OrDash(c.Mother.Email)},
		}
	}
	return newListModel(children.ListPath, "Niños", "niños", ctrl, children.Key, cols, row, detail, deps.Timeout)
}

func createdAt(u users.User) string {
	if u.CreatedAt.IsZero() {
		return "—"
	}
	return u.CreatedAt.Format("02/01/2006")
}
