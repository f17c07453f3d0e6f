package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/tracker"
	"github.com/julianstephens/streakly/internal/tui/components/dashboard"
	"github.com/julianstephens/streakly/internal/tui/components/habits"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

type SessionState int

// The first three states are the tabs, in display order.
const (
	StateToday SessionState = iota
	StateOverview
	StateArchived
	StateAddHabit
	StateEditHabit
	StateConfirmArchive
)

const tabCount = 3

var tabTitles = []string{"Today", "Overview", "Archived"}

type HabitFormModel struct {
	Name      string
	Category  models.Category
	TimeOfDay models.TimeOfDay
}

type Model struct {
	tracker           *tracker.Tracker
	state             SessionState
	previousState     SessionState
	keys              KeyMap
	help              help.Model
	habitList         habits.Model
	archivedList      habits.Model
	dashboard         dashboard.Model
	form              *huh.Form
	habitForm         *HabitFormModel
	editingID         string
	habitToArchiveID  string
	formError         string
	status            string
	statusErr         bool
	validationWarning string
	quitting          bool
	width             int
	height            int
}

// NewModel builds the TUI over a loaded tracker.
func NewModel(t *tracker.Tracker) Model {
	m := Model{
		tracker:      t,
		state:        StateToday,
		keys:         DefaultKeyMap(),
		help:         help.New(),
		habitList:    habits.New(false, 0, 0),
		archivedList: habits.New(true, 0, 0),
		dashboard:    dashboard.New(0, 0),
	}
	m.refresh()
	return m
}

// refresh rebuilds every view from the tracker.
func (m *Model) refresh() {
	today := utils.TodayKey()
	m.habitList.SetHabits(m.tracker.Active(), today)
	m.archivedList.SetHabits(m.tracker.Archived(), today)
	m.dashboard.SetDashboard(m.tracker.Dashboard())
	m.updateValidationStatus()
}

func (m *Model) updateValidationStatus() {
	result := validation.New().ValidateHabits(m.tracker.Habits())
	if result.HasConflicts() {
		m.validationWarning = fmt.Sprintf("⚠ %d validation warning(s), run 'streakly validate'", len(result.Conflicts))
	} else {
		m.validationWarning = ""
	}
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.NextTab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateToday:
		hk := habits.DefaultKeyMap()
		keys = append(keys, hk.Add, hk.Toggle, hk.Edit, hk.Archive)
	case StateArchived:
		keys = append(keys, habits.DefaultKeyMap().Restore)
	case StateConfirmArchive:
		keys = []key.Binding{m.keys.Confirm, m.keys.Cancel}
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.NextTab, m.keys.PrevTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down}

	hk := habits.DefaultKeyMap()
	var actions []key.Binding
	switch m.state {
	case StateToday:
		actions = []key.Binding{hk.Add, hk.Toggle, hk.Edit, hk.Archive}
	case StateArchived:
		actions = []key.Binding{hk.Restore}
	}

	return [][]key.Binding{global, m.keys.TabJumps, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return nil
}
