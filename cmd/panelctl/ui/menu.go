package ui

import (
	"strings"

	"nutri-admin/internal/domain/nutrition"
)

// menuModel es una lista de tarjetas con cursor.
type menuModel struct {
	title  string
	cards  []nutrition.Card
	cursor int
	open   *nutrition.Card
}

func (m *menuModel) move(delta int) {
	if len(m.cards) == 0 {
		return
	}
	m.cursor = (m.cursor + delta + len(m.cards)) % len(m.cards)
}

func (m menuModel) current() (nutrition.Card, bool) {
	if m.cursor < 0 || m.cursor >= len(m.cards) {
		return nutrition.Card{}, false
	}
	return m.cards[m.cursor], true
}

func (m menuModel) view(s Styles, header, help string) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(m.title))
	b.WriteString("\n")
	if header != "" {
		b.WriteString(s.Subtitle.Render(header))
		b.WriteString("\n\n")
	}

	if m.open != nil {
		b.WriteString(s.Detail.Render(m.open.Title + "\n" + m.open.Description + "\n\nSección en construcción."))
		b.WriteString("\n")
		b.WriteString(s.Help.Render("esc vuelve"))
		return b.String()
	}

	for i, c := range m.cards {
		style := s.Card
		if i == m.cursor {
			style = s.Selected
		}
		b.WriteString(style.Render(c.Title + "\n" + s.Subtitle.Render(c.Description)))
		b.WriteString("\n")
	}
	b.WriteString(s.Help.Render(help))
	return b.String()
}
