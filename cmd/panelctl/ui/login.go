package ui

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"nutri-admin/internal/domain/session"
)

type loginResultMsg struct{ err error }

type loginModel struct {
	email    textinput.Model
	password textinput.Model
	focus    int
	busy     bool
	message  string
}

func newLoginModel() loginModel {
	email := textinput.New()
	email.Placeholder = "admin@ejemplo.com"
	email.Prompt = "Email:      "
	email.CharLimit = 120
	email.Width = 40
	email.Focus()

	pw := textinput.New()
	pw.Prompt = "Contraseña: "
	pw.EchoMode = textinput.EchoPassword
	pw.EchoCharacter = '•'
	pw.CharLimit = 120
	pw.Width = 40

	return loginModel{email: email, password: pw}
}

func (m loginModel) reset(message string) loginModel {
	m.password.SetValue("")
	m.busy = false
	m.message = message
	m.focus = 0
	m.email.Focus()
	m.password.Blur()
	return m
}

func (m loginModel) update(msg tea.KeyMsg, deps Deps) (loginModel, tea.Cmd) {
	if m.busy {
		return m, nil
	}
	switch msg.String() {
	case "tab", "shift+tab", "up", "down":
		m.focus = 1 - m.focus
		if m.focus == 0 {
			m.password.Blur()
			return m, m.email.Focus()
		}
		m.email.Blur()
		return m, m.password.Focus()
	case "enter":
		if m.focus == 0 {
			m.focus = 1
			m.email.Blur()
			return m, m.password.Focus()
		}
		m.busy = true
		m.message = ""
		return m, submitLogin(deps, strings.TrimSpace(m.email.Value()), m.password.Value())
	}

	var cmd tea.Cmd
	if m.focus == 0 {
		m.email, cmd = m.email.Update(msg)
	} else {
		m.password, cmd = m.password.Update(msg)
	}
	return m, cmd
}

func submitLogin(deps Deps, email, password string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), deps.Timeout)
		defer cancel()

		token, user, err := deps.Gateway.Login(ctx, email, password)
		if err != nil {
			return loginResultMsg{err: err}
		}
		return loginResultMsg{err: deps.Store.Login(ctx, token, user)}
	}
}

func (m loginModel) view(s Styles) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("Panel de administración"))
	b.WriteString("\n")
	if m.message != "" {
		b.WriteString(s.Error.Render(m.message))
		b.WriteString("\n\n")
	}
	b.WriteString(lipgloss.JoinVertical(lipgloss.Left, m.email.View(), m.password.View()))
	b.WriteString("\n")
	help := "tab cambia de campo · enter ingresa · ctrl+c sale"
	if m.busy {
		help = "Ingresando…"
	}
	b.WriteString(s.Help.Render(help))
	return b.String()
}

func loginError(err error) string {
	if err == nil {
		return ""
	}
	return session.LoginMessage(err)
}
