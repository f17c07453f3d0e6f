package tui

import (
	"github.com/charmbracelet/lipgloss"
)

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string

	switch m.state {
	case StateToday:
		content = docStyle.Render(m.habitList.View())
	case StateOverview:
		content = docStyle.Render(m.dashboard.View())
	case StateArchived:
		content = docStyle.Render(m.archivedList.View())
	case StateAddHabit, StateEditHabit:
		content = m.viewForm()
	case StateConfirmArchive:
		content = m.viewConfirmArchive()
	}

	var banner string
	if m.validationWarning != "" {
		banner = warningStyle.Render(m.validationWarning)
	}
	var status string
	switch {
	case m.status == "":
	case m.statusErr:
		status = errorStyle.Render(m.status)
	default:
		status = statusStyle.Render(m.status)
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		banner,
		content,
		status,
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	active := m.state
	if active >= tabCount {
		active = m.previousState
	}
	var tabs []string
	for i, title := range tabTitles {
		if active == SessionState(i) {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, tabStyle.Render(title))
		}
	}
	return tabBarStyle.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

func (m Model) viewForm() string {
	parts := []string{m.form.View()}
	if m.formError != "" {
		parts = append(parts, dangerStyle.Render(m.formError))
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}

func (m Model) viewConfirmArchive() string {
	name := m.habitToArchiveID
	if h, err := m.tracker.Find(m.habitToArchiveID); err == nil {
		name = h.Name
	}
	return lipgloss.Place(m.width, max(m.height-4, 5),
		lipgloss.Center, lipgloss.Center,
		lipgloss.JoinVertical(lipgloss.Center,
			dangerStyle.Render("Archive "+name+"?"),
			"Its history is kept and it can be restored later.",
			"",
			"[y] Yes",
			"[n] No",
		),
	)
}
