package tracker

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/streakly/internal/achievements"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/motivation"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/utils"
)

// memStore is an in-memory storage.Provider.
type memStore struct {
	lists    map[string][]models.Habit
	unlocks  map[string]time.Time
	settings *models.Settings
	saves    int
	failSave error
	failLoad error
}

func newMemStore() *memStore {
	return &memStore{lists: map[string][]models.Habit{}, unlocks: map[string]time.Time{}}
}

func (m *memStore) Init() error  { return nil }
func (m *memStore) Load() error  { return nil }
func (m *memStore) Close() error { return nil }

func (m *memStore) LoadHabits(key string) ([]models.Habit, error) {
	if m.failLoad != nil {
		return nil, m.failLoad
	}
	list, ok := m.lists[key]
	if !ok {
		return nil, storage.ErrNotFound
	}
	return cloneAll(list), nil
}

func (m *memStore) SaveHabits(key string, habits []models.Habit) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.saves++
	m.lists[key] = cloneAll(habits)
	return nil
}

func (m *memStore) LoadUnlocks() (map[string]time.Time, error) {
	out := map[string]time.Time{}
	for k, v := range m.unlocks {
		out[k] = v
	}
	return out, nil
}

func (m *memStore) SaveUnlocks(u map[string]time.Time) error {
	m.unlocks = map[string]time.Time{}
	for k, v := range u {
		m.unlocks[k] = v
	}
	return nil
}

func (m *memStore) GetSettings() (models.Settings, error) {
	if m.settings == nil {
		return models.DefaultSettings(), nil
	}
	return *m.settings, nil
}

func (m *memStore) SaveSettings(s models.Settings) error {
	if m.failSave != nil {
		return m.failSave
	}
	m.settings = &s
	return nil
}

func (m *memStore) GetConfigPath() string { return "memory" }

var fixedNow = time.Date(2024, 5, 20, 8, 30, 0, 0, time.Local)

func pinClock(t *testing.T, now time.Time) {
	t.Helper()
	t.Cleanup(utils.SetNowFunc(func() time.Time { return now }))
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func newTracker(t *testing.T, store *memStore) *Tracker {
	t.Helper()
	tr := New(store, WithIDFunc(seqIDs()), WithSelector(motivation.NewSeededSelector(1)))
	require.NoError(t, tr.Load())
	return tr
}

func TestLoad_FallsBackToSamples(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)

	habits := tr.Habits()
	require.Len(t, habits, 2)
	assert.True(t, tr.UsingSamples())
	assert.Equal(t, "Morning Meditation", habits[0].Name)
	assert.Equal(t, models.CategoryMindfulness, habits[0].Category)
	assert.Equal(t, models.TimeMorning, habits[0].TimeOfDay)
	assert.Equal(t, "Read 30 minutes", habits[1].Name)
	assert.Equal(t, models.CategoryProductivity, habits[1].Category)
	assert.Equal(t, models.TimeEvening, habits[1].TimeOfDay)
	assert.Empty(t, habits[0].CompletedDates)
	assert.Zero(t, store.saves, "loading samples must not write")
}

func TestLoad_StorageFailureFallsBack(t *testing.T) {
	store := newMemStore()
	store.failLoad = errors.New("disk on fire")
	tr := newTracker(t, store)
	assert.Len(t, tr.Habits(), 2)
	assert.True(t, tr.UsingSamples())
}

func TestLoad_RefreshesStaleStreaks(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	store.lists["habits"] = []models.Habit{{
		ID: "a", Name: "Walk", Category: models.CategoryFitness, TimeOfDay: models.TimeAnytime,
		CompletedDates: []string{"2024-05-18", "2024-05-19"},
		Streak:         9,
	}}

	tr := newTracker(t, store)
	h, err := tr.Find("a")
	require.NoError(t, err)
	assert.Equal(t, 0, h.Streak, "no completion today means no streak")
	assert.False(t, tr.UsingSamples())
}

func TestAdd(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)

	h, err := tr.Add("  Stretch ", models.CategoryFitness, models.TimeMorning)
	require.NoError(t, err)
	assert.Equal(t, "Stretch", h.Name)
	assert.Equal(t, "id-3", h.ID)
	assert.Equal(t, 0, h.Streak)
	assert.NotNil(t, h.CompletedDates)
	assert.Empty(t, h.CompletedDates)
	assert.True(t, h.CreatedAt.Equal(fixedNow))

	require.Len(t, store.lists["habits"], 3, "samples are persisted with the first mutation")
	assert.False(t, tr.UsingSamples())
}

func TestMutationsUseSingleHabitList(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)

	h, err := tr.Add("Stretch", models.CategoryFitness, models.TimeMorning)
	require.NoError(t, err)
	_, err = tr.Toggle(h.ID)
	require.NoError(t, err)
	_, err = tr.SetArchived(h.ID, true)
	require.NoError(t, err)

	require.Len(t, store.lists, 1, "habit ids are unique across the whole store")
	assert.Contains(t, store.lists, constants.HabitsKey)
}

func TestAdd_Rejects(t *testing.T) {
	tr := newTracker(t, newMemStore())

	_, err := tr.Add("morning meditation", models.CategoryHealth, models.TimeMorning)
	assert.ErrorIs(t, err, ErrDuplicateName)

	_, err = tr.Add("", models.CategoryHealth, models.TimeMorning)
	assert.Error(t, err)

	_, err = tr.Add("Garden", models.Category("gardening"), models.TimeMorning)
	assert.Error(t, err)

	_, err = tr.Add("Garden", models.CategoryHealth, models.TimeOfDay("noon"))
	assert.Error(t, err)

	assert.Len(t, tr.Habits(), 2)
}

func TestToggle(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)

	h, err := tr.Toggle("Morning Meditation")
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-05-20"}, h.CompletedDates)
	assert.Equal(t, 1, h.Streak)
	at, ok := h.CompletedAt("2024-05-20")
	require.True(t, ok)
	assert.True(t, at.Equal(fixedNow))

	h, err = tr.Toggle(h.ID)
	require.NoError(t, err)
	assert.Empty(t, h.CompletedDates)
	assert.Equal(t, 0, h.Streak)
	assert.Nil(t, h.CompletionTimes)

	assert.Equal(t, 2, store.saves)
}

func TestToggle_NotFound(t *testing.T) {
	tr := newTracker(t, newMemStore())
	_, err := tr.Toggle("nope")
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestMutationKeepsStateOnSaveFailure(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)
	store.failSave = errors.New("read-only")

	_, err := tr.Toggle("Morning Meditation")
	require.Error(t, err)

	h, err := tr.Find("Morning Meditation")
	require.NoError(t, err)
	assert.Empty(t, h.CompletedDates)
}

func TestEdit(t *testing.T) {
	pinClock(t, fixedNow)
	tr := newTracker(t, newMemStore())
	_, err := tr.Toggle("Read 30 minutes")
	require.NoError(t, err)

	name := "Read 45 minutes"
	cat := models.CategoryLearning
	h, err := tr.Edit("read 30 minutes", Update{Name: &name, Category: &cat})
	require.NoError(t, err)
	assert.Equal(t, name, h.Name)
	assert.Equal(t, models.CategoryLearning, h.Category)
	assert.Equal(t, models.TimeEvening, h.TimeOfDay)
	assert.Equal(t, 1, h.Streak, "edit keeps completions")

	clash := "Morning Meditation"
	_, err = tr.Edit(h.ID, Update{Name: &clash})
	assert.ErrorIs(t, err, ErrDuplicateName)

	// renaming to its own name in another case is fine
	same := "READ 45 MINUTES"
	_, err = tr.Edit(h.ID, Update{Name: &same})
	assert.NoError(t, err)
}

func TestArchive(t *testing.T) {
	tr := newTracker(t, newMemStore())

	h, err := tr.ToggleArchive("Read 30 minutes")
	require.NoError(t, err)
	assert.True(t, h.Archived)
	assert.Len(t, tr.Active(), 1)
	assert.Len(t, tr.Archived(), 1)

	h, err = tr.SetArchived(h.ID, false)
	require.NoError(t, err)
	assert.False(t, h.Archived)
	assert.Empty(t, tr.Archived())
}

func TestHabitsReturnsCopies(t *testing.T) {
	tr := newTracker(t, newMemStore())
	hs := tr.Habits()
	hs[0].Name = "changed"
	hs[0].CompletedDates = append(hs[0].CompletedDates, "2024-01-01")

	h, err := tr.Find(tr.Habits()[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Morning Meditation", h.Name)
	assert.Empty(t, h.CompletedDates)
}

func TestDashboard(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	days := make([]string, 7)
	for i := range days {
		days[i] = utils.DayKeyFrom(fixedNow, i)
	}
	store.lists["habits"] = []models.Habit{
		{ID: "a", Name: "Meditate", Category: models.CategoryMindfulness, TimeOfDay: models.TimeMorning,
			CompletedDates: days, CompletionTimes: map[string]string{days[0]: fixedNow.Add(-time.Hour).Format(time.RFC3339)}},
		{ID: "b", Name: "Lift", Category: models.CategoryFitness, TimeOfDay: models.TimeEvening, CompletedDates: []string{}},
		{ID: "c", Name: "Old", Category: models.CategoryHealth, TimeOfDay: models.TimeMorning,
			CompletedDates: days, Archived: true},
	}
	tr := newTracker(t, store)

	d := tr.Dashboard()
	assert.Equal(t, "2024-05-20", d.Today)
	assert.Len(t, d.Active, 2)
	assert.Equal(t, 1, d.CompletedToday)
	assert.Equal(t, models.CategoryMindfulness, d.Quote.Category)

	var unlocked []string
	for _, a := range d.Unlocked {
		unlocked = append(unlocked, a.ID)
		require.NotNil(t, a.UnlockedAt)
	}
	assert.Equal(t, []string{achievements.WeekWarriorID, achievements.EarlyBirdID}, unlocked)
	assert.Len(t, d.Locked, len(achievements.Catalog())-2)

	require.Len(t, d.Overview, 2, "archived habits are left out of the overview")
	assert.Equal(t, "a", d.Overview[0].HabitID)

	require.Len(t, d.Insights, 2)
	assert.Equal(t, models.InsightSuccess, d.Insights[0].Type)
	assert.Equal(t, models.InsightWarning, d.Insights[1].Type)
	assert.Equal(t, "You have 1 habits left to complete today. You've got this!", d.Insights[1].Message)

	assert.Contains(t, store.unlocks, achievements.WeekWarriorID)
}

func TestDashboard_LedgerKeepsFirstUnlock(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	first := fixedNow.Add(-72 * time.Hour)
	store.unlocks[achievements.WeekWarriorID] = first
	days := make([]string, 7)
	for i := range days {
		days[i] = utils.DayKeyFrom(fixedNow, i)
	}
	store.lists["habits"] = []models.Habit{{ID: "a", Name: "Walk", Category: models.CategoryFitness,
		TimeOfDay: models.TimeAnytime, CompletedDates: days}}

	tr := newTracker(t, store)
	d := tr.Dashboard()
	require.Len(t, d.Unlocked, 1)
	assert.True(t, d.Unlocked[0].UnlockedAt.Equal(first))
}

func TestSettings(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	tr := newTracker(t, store)
	assert.Equal(t, models.DefaultSettings(), tr.Settings())

	err := tr.UpdateSettings(models.Settings{GraphDays: 0, OverviewLimit: 5, LogDays: 14})
	require.Error(t, err)
	assert.Nil(t, store.settings)

	want := models.Settings{GraphDays: 14, OverviewLimit: 1, LogDays: 30}
	require.NoError(t, tr.UpdateSettings(want))
	assert.Equal(t, want, *store.settings)

	d := tr.Dashboard()
	assert.Equal(t, 14, d.GraphDays)
	assert.Len(t, d.Overview, 1)

	reloaded := newTracker(t, store)
	assert.Equal(t, want, reloaded.Settings())
}

func TestLoad_InvalidSettingsFallBack(t *testing.T) {
	pinClock(t, fixedNow)
	store := newMemStore()
	store.settings = &models.Settings{GraphDays: 500, OverviewLimit: 5, LogDays: 14}
	tr := newTracker(t, store)
	assert.Equal(t, models.DefaultSettings(), tr.Settings())
}

func TestGraph(t *testing.T) {
	pinClock(t, fixedNow)
	tr := newTracker(t, newMemStore())
	_, err := tr.Toggle("Morning Meditation")
	require.NoError(t, err)

	cells, err := tr.Graph("Morning Meditation", 7)
	require.NoError(t, err)
	require.Len(t, cells, 7)
	assert.True(t, cells[6].Done)
	assert.False(t, cells[0].Done)

	_, err = tr.Graph("missing", 7)
	assert.ErrorIs(t, err, ErrHabitNotFound)
}

func TestQuote(t *testing.T) {
	pinClock(t, fixedNow)
	tr := newTracker(t, newMemStore())

	assert.Equal(t, models.CategoryFitness, tr.Quote(models.CategoryFitness).Category)

	_, err := tr.Toggle("Read 30 minutes")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryProductivity, tr.Quote("").Category)
}
