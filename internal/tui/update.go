package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/tui/components/habits"
	"github.com/julianstephens/streakly/internal/utils"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		// tabs, status line and help
		h := max(msg.Height-6, 1)
		m.habitList.SetSize(msg.Width-4, h)
		m.archivedList.SetSize(msg.Width-4, h)
		m.dashboard.SetSize(msg.Width-4, h)
		return m, nil
	}

	switch m.state {
	case StateAddHabit, StateEditHabit:
		return m.updateForm(msg)
	case StateConfirmArchive:
		return m.updateConfirmArchive(msg)
	}

	switch msg := msg.(type) {
	case habits.AddHabitMsg:
		m.habitForm = &HabitFormModel{Category: models.CategoryProductivity, TimeOfDay: models.TimeAnytime}
		return m.openForm(StateAddHabit, "New habit")

	case habits.EditHabitMsg:
		m.editingID = msg.Habit.ID
		m.habitForm = &HabitFormModel{Name: msg.Habit.Name, Category: msg.Habit.Category, TimeOfDay: msg.Habit.TimeOfDay}
		return m.openForm(StateEditHabit, "Edit habit")

	case habits.ToggleHabitMsg:
		h, err := m.tracker.Toggle(msg.ID)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		if h.CompletedOn(utils.TodayKey()) {
			m.setStatus(fmt.Sprintf("✓ %s done (streak: %s)", h.Name, overview.DaysLabel(h.Streak)))
		} else {
			m.setStatus(fmt.Sprintf("%s unmarked", h.Name))
		}
		m.refresh()
		return m, nil

	case habits.ArchiveHabitMsg:
		m.habitToArchiveID = msg.ID
		m.previousState = m.state
		m.state = StateConfirmArchive
		return m, nil

	case habits.RestoreHabitMsg:
		h, err := m.tracker.SetArchived(msg.ID, false)
		if err != nil {
			m.setError(err)
			return m, nil
		}
		m.setStatus(fmt.Sprintf("✓ Restored %s", h.Name))
		m.refresh()
		return m, nil

	case tea.KeyMsg:
		if m.currentListFiltering() {
			break
		}
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.NextTab):
			m.switchTab((m.state + 1) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.PrevTab):
			m.switchTab((m.state - 1 + tabCount) % tabCount)
			return m, nil
		case key.Matches(msg, m.keys.Help):
			m.help.ShowAll = !m.help.ShowAll
			return m, nil
		}
		for i, jump := range m.keys.TabJumps {
			if key.Matches(msg, jump) {
				m.switchTab(SessionState(i))
				return m, nil
			}
		}
	}

	var cmd tea.Cmd
	switch m.state {
	case StateToday:
		m.habitList, cmd = m.habitList.Update(msg)
	case StateArchived:
		m.archivedList, cmd = m.archivedList.Update(msg)
	}
	return m, cmd
}

func (m *Model) switchTab(state SessionState) {
	m.state = state
	m.setStatus("")
}

func (m Model) currentListFiltering() bool {
	switch m.state {
	case StateToday:
		return m.habitList.Filtering()
	case StateArchived:
		return m.archivedList.Filtering()
	}
	return false
}

func (m Model) openForm(state SessionState, title string) (tea.Model, tea.Cmd) {
	m.form = newHabitForm(title, m.habitForm)
	m.formError = ""
	m.previousState = m.state
	m.state = state
	return m, m.form.Init()
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.Type == tea.KeyEsc {
		m.closeForm()
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		var h models.Habit
		var err error
		if m.state == StateAddHabit {
			h, err = m.tracker.Add(m.habitForm.Name, m.habitForm.Category, m.habitForm.TimeOfDay)
		} else {
			h, err = m.tracker.Edit(m.editingID, tracker.Update{
				Name:      &m.habitForm.Name,
				Category:  &m.habitForm.Category,
				TimeOfDay: &m.habitForm.TimeOfDay,
			})
		}
		if err != nil {
			// Stay in the form so the user can fix the input or cancel with ESC
			m.formError = err.Error()
			m.form = newHabitForm(formTitle(m.state), m.habitForm)
			return m, m.form.Init()
		}
		m.setStatus(fmt.Sprintf("✓ Saved %s", h.Name))
		m.closeForm()
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.closeForm()
		return m, nil
	}
	return m, cmd
}

func (m *Model) closeForm() {
	m.form = nil
	m.habitForm = nil
	m.editingID = ""
	m.formError = ""
	m.state = m.previousState
}

func formTitle(state SessionState) string {
	if state == StateEditHabit {
		return "Edit habit"
	}
	return "New habit"
}

func (m Model) updateConfirmArchive(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(keyMsg, m.keys.Confirm):
		if h, err := m.tracker.SetArchived(m.habitToArchiveID, true); err != nil {
			m.setError(err)
		} else {
			m.setStatus(fmt.Sprintf("✓ Archived %s", h.Name))
			m.refresh()
		}
		m.habitToArchiveID = ""
		m.state = m.previousState
	case key.Matches(keyMsg, m.keys.Cancel):
		m.habitToArchiveID = ""
		m.state = m.previousState
	}
	return m, nil
}

func (m *Model) setStatus(msg string) {
	m.status = msg
	m.statusErr = false
}

func (m *Model) setError(err error) {
	logger.Warn("TUI action failed", "error", err)
	m.status = "Error: " + err.Error()
	m.statusErr = true
}
