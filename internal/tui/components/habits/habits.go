package habits

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/overview"
)

type AddHabitMsg struct{}

type ToggleHabitMsg struct {
	ID string
}

type EditHabitMsg struct {
	Habit models.Habit
}

type ArchiveHabitMsg struct {
	ID string
}

type RestoreHabitMsg struct {
	ID string
}

type Item struct {
	Habit models.Habit
	Done  bool
}

func (i Item) Title() string {
	switch {
	case i.Habit.Archived:
		return "▪ " + i.Habit.Name
	case i.Done:
		return "✓ " + i.Habit.Name
	default:
		return "○ " + i.Habit.Name
	}
}

func (i Item) Description() string {
	return fmt.Sprintf("%s | %s | %s", i.Habit.Category, i.Habit.TimeOfDay, overview.DaysLabel(i.Habit.Streak))
}

func (i Item) FilterValue() string { return i.Habit.Name }

type KeyMap struct {
	Add     key.Binding
	Toggle  key.Binding
	Edit    key.Binding
	Archive key.Binding
	Restore key.Binding
}

func DefaultKeyMap() KeyMap {
	return KeyMap{
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add"),
		),
		Toggle: key.NewBinding(
			key.WithKeys(" ", "m"),
			key.WithHelp("space", "toggle done"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit"),
		),
		Archive: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "archive"),
		),
		Restore: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restore"),
		),
	}
}

// Model lists either the active or the archived habits. The archived list
// only offers restore.
type Model struct {
	list     list.Model
	keys     KeyMap
	archived bool
}

func New(archived bool, width, height int) Model {
	l := list.New(nil, list.NewDefaultDelegate(), width, height)
	l.Title = "Habits"
	if archived {
		l.Title = "Archived"
	}
	l.SetShowTitle(false)
	l.SetShowHelp(false) // help is rendered by the main model

	m := Model{list: l, keys: DefaultKeyMap(), archived: archived}
	l.AdditionalShortHelpKeys = m.actionKeys
	l.AdditionalFullHelpKeys = m.actionKeys
	m.list = l
	return m
}

func (m Model) actionKeys() []key.Binding {
	if m.archived {
		return []key.Binding{m.keys.Restore}
	}
	return []key.Binding{m.keys.Add, m.keys.Toggle, m.keys.Edit, m.keys.Archive}
}

// SetHabits replaces the list items; done marks are taken for today.
func (m *Model) SetHabits(habits []models.Habit, today string) {
	items := make([]list.Item, len(habits))
	for i, h := range habits {
		items[i] = Item{Habit: h, Done: h.CompletedOn(today)}
	}
	m.list.SetItems(items)
}

// Filtering reports whether the list is capturing keys for its filter.
func (m Model) Filtering() bool {
	return m.list.FilterState() == list.Filtering
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd

	if msg, ok := msg.(tea.KeyMsg); ok && !m.Filtering() {
		selected, hasSelection := m.list.SelectedItem().(Item)
		switch {
		case m.archived && key.Matches(msg, m.keys.Restore):
			if hasSelection {
				return m, func() tea.Msg { return RestoreHabitMsg{ID: selected.Habit.ID} }
			}
		case m.archived:
			// nothing else applies to archived habits
		case key.Matches(msg, m.keys.Add):
			return m, func() tea.Msg { return AddHabitMsg{} }
		case key.Matches(msg, m.keys.Toggle):
			if hasSelection {
				return m, func() tea.Msg { return ToggleHabitMsg{ID: selected.Habit.ID} }
			}
		case key.Matches(msg, m.keys.Edit):
			if hasSelection {
				return m, func() tea.Msg { return EditHabitMsg{Habit: selected.Habit} }
			}
		case key.Matches(msg, m.keys.Archive):
			if hasSelection {
				return m, func() tea.Msg { return ArchiveHabitMsg{ID: selected.Habit.ID} }
			}
		}
	}

	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if len(m.list.Items()) == 0 && !m.Filtering() {
		if m.archived {
			return "\n  No archived habits."
		}
		return "\n  No habits yet.\n  Press 'a' to add one."
	}
	return m.list.View()
}

func (m *Model) SetSize(width, height int) {
	m.list.SetSize(width, height)
}
