package ui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#1f6f5c")
	Muted       = lipgloss.Color("#6b7280")
	Destructive = lipgloss.Color("#e53935")
	Border      = lipgloss.Color("#d1d5db")
)

// Styles agrupa los estilos de las pantallas.
type Styles struct {
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Error    lipgloss.Style
	Help     lipgloss.Style
	Card     lipgloss.Style
	Selected lipgloss.Style
	Detail   lipgloss.Style
	Label    lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(Primary).MarginBottom(1),
		Subtitle: lipgloss.NewStyle().Foreground(Muted),
		Error:    lipgloss.NewStyle().Foreground(Destructive).Bold(true),
		Help:     lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
		Card:     lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1).Width(48),
		Selected: lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Primary).Padding(0, 1).Width(48),
		Detail:   lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(Primary).Padding(0, 1),
		Label:    lipgloss.NewStyle().Bold(true).Width(14),
	}
}
