package tui

import "github.com/charmbracelet/lipgloss"

const (
	colorAccent  = lipgloss.Color("212")
	colorSurface = lipgloss.Color("236")
	colorMuted   = lipgloss.Color("243")
	colorDone    = lipgloss.Color("42")
	colorWarn    = lipgloss.Color("214")
	colorError   = lipgloss.Color("203")
)

var (
	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(colorMuted)
	activeTabStyle = tabStyle.
			Foreground(colorAccent).
			Background(colorSurface).
			Bold(true).
			Underline(true)
	tabBarStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(colorSurface)

	dangerStyle  = lipgloss.NewStyle().Foreground(colorError).Bold(true)
	warningStyle = lipgloss.NewStyle().Foreground(colorWarn).Italic(true).Padding(0, 2)
	statusStyle  = lipgloss.NewStyle().Foreground(colorDone).Padding(0, 2)
	errorStyle   = statusStyle.Foreground(colorError)

	docStyle = lipgloss.NewStyle().Padding(1, 2)
)
