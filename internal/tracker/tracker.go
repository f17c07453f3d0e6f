// Package tracker owns the canonical habit list. It applies user actions
// through the streak package, persists the result and derives the
// dashboard from the engine packages.
//
// A Tracker is not safe for concurrent use; the CLI and TUI drive it from a
// single goroutine.
package tracker

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/streakly/internal/achievements"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/motivation"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/streak"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/internal/validation"
)

var (
	ErrHabitNotFound = errors.New("habit not found")
	ErrDuplicateName = errors.New("a habit with that name already exists")
)

type Tracker struct {
	store     storage.Provider
	habits    []models.Habit
	ledger    achievements.Ledger
	settings  models.Settings
	quotes    *motivation.Selector
	validator *validation.Validator
	newID     func() string
	sampled   bool
}

type Option func(*Tracker)

// WithSelector overrides the quote selector.
func WithSelector(s *motivation.Selector) Option {
	return func(t *Tracker) { t.quotes = s }
}

// WithIDFunc overrides identifier generation.
func WithIDFunc(fn func() string) Option {
	return func(t *Tracker) { t.newID = fn }
}

func New(store storage.Provider, opts ...Option) *Tracker {
	t := &Tracker{
		store:     store,
		ledger:    achievements.Ledger{},
		settings:  models.DefaultSettings(),
		quotes:    motivation.NewSelector(),
		validator: validation.New(),
		newID:     func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// SampleHabits is the starter list shown when nothing has been saved yet.
func SampleHabits(newID func() string) []models.Habit {
	now := utils.Now()
	return []models.Habit{
		{
			ID:             newID(),
			Name:           "Morning Meditation",
			Category:       models.CategoryMindfulness,
			TimeOfDay:      models.TimeMorning,
			CompletedDates: []string{},
			CreatedAt:      now,
		},
		{
			ID:             newID(),
			Name:           "Read 30 minutes",
			Category:       models.CategoryProductivity,
			TimeOfDay:      models.TimeEvening,
			CompletedDates: []string{},
			CreatedAt:      now,
		},
	}
}

// Load reads the habit list and unlock ledger. Missing or unreadable data
// falls back to the sample habits; streaks are recomputed for today.
func (t *Tracker) Load() error {
	habits, err := t.store.LoadHabits(constants.HabitsKey)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		logger.Info("No saved habits, starting from samples", "key", constants.HabitsKey)
		habits = SampleHabits(t.newID)
		t.sampled = true
	case err != nil:
		logger.Warn("Failed to load habits, starting from samples", "error", err)
		habits = SampleHabits(t.newID)
		t.sampled = true
	default:
		t.sampled = false
	}

	if result := t.validator.ValidateHabits(habits); result.HasConflicts() {
		logger.Warn("Loaded habits have problems", "report", result.FormatReport())
	}
	t.habits = streak.Refresh(habits)

	unlocks, err := t.store.LoadUnlocks()
	if err != nil {
		logger.Warn("Failed to load achievement unlocks", "error", err)
		unlocks = nil
	}
	t.ledger = achievements.Ledger{}
	for id, at := range unlocks {
		t.ledger[id] = at
	}

	settings, err := t.store.GetSettings()
	if err == nil {
		err = settings.Validate()
	}
	if err != nil {
		logger.Warn("Failed to load settings, using defaults", "error", err)
		settings = models.DefaultSettings()
	}
	t.settings = settings
	return nil
}

func (t *Tracker) Settings() models.Settings {
	return t.settings
}

// UpdateSettings validates and persists s. The previous settings stay in
// effect when either step fails.
func (t *Tracker) UpdateSettings(s models.Settings) error {
	if err := s.Validate(); err != nil {
		return err
	}
	if err := t.store.SaveSettings(s); err != nil {
		return fmt.Errorf("saving settings: %w", err)
	}
	t.settings = s
	return nil
}

// UsingSamples reports whether the list came from SampleHabits rather than
// the store.
func (t *Tracker) UsingSamples() bool {
	return t.sampled
}

// Habits returns a copy of every habit in display order.
func (t *Tracker) Habits() []models.Habit {
	return cloneAll(t.habits)
}

func (t *Tracker) Active() []models.Habit {
	return filter(t.habits, false)
}

func (t *Tracker) Archived() []models.Habit {
	return filter(t.habits, true)
}

// Find resolves ref as a habit ID, then as a case-insensitive name.
func (t *Tracker) Find(ref string) (models.Habit, error) {
	i, err := t.index(ref)
	if err != nil {
		return models.Habit{}, err
	}
	return t.habits[i].Clone(), nil
}

func (t *Tracker) index(ref string) (int, error) {
	ref = strings.TrimSpace(ref)
	if i := slices.IndexFunc(t.habits, func(h models.Habit) bool { return h.ID == ref }); i >= 0 {
		return i, nil
	}
	if i := slices.IndexFunc(t.habits, func(h models.Habit) bool { return strings.EqualFold(h.Name, ref) }); i >= 0 {
		return i, nil
	}
	return -1, fmt.Errorf("%w: %q", ErrHabitNotFound, ref)
}

func (t *Tracker) nameTaken(name, exceptID string) bool {
	name = strings.TrimSpace(name)
	return slices.ContainsFunc(t.habits, func(h models.Habit) bool {
		return h.ID != exceptID && strings.EqualFold(strings.TrimSpace(h.Name), name)
	})
}

// Add creates a habit with an empty completion set.
func (t *Tracker) Add(name string, category models.Category, tod models.TimeOfDay) (models.Habit, error) {
	name = strings.TrimSpace(name)
	if err := t.validator.ValidateFields(name, category, tod); err != nil {
		return models.Habit{}, err
	}
	if t.nameTaken(name, "") {
		return models.Habit{}, fmt.Errorf("%w: %q", ErrDuplicateName, name)
	}

	h := models.Habit{
		ID:             t.newID(),
		Name:           name,
		Category:       category,
		TimeOfDay:      tod,
		CompletedDates: []string{},
		CreatedAt:      utils.Now(),
	}
	next := append(cloneAll(t.habits), h)
	if err := t.commit(next); err != nil {
		return models.Habit{}, err
	}
	logger.Debug("Added habit", "id", h.ID, "name", h.Name)
	return h.Clone(), nil
}

// Toggle flips today's completion of the referenced habit.
func (t *Tracker) Toggle(ref string) (models.Habit, error) {
	return t.update(ref, func(h models.Habit) (models.Habit, error) {
		return streak.ToggleAt(h, utils.Now()), nil
	})
}

// Update holds the user-editable fields; nil fields are left unchanged.
type Update struct {
	Name      *string
	Category  *models.Category
	TimeOfDay *models.TimeOfDay
}

// Edit applies u to the referenced habit. Completions and streak are kept.
func (t *Tracker) Edit(ref string, u Update) (models.Habit, error) {
	return t.update(ref, func(h models.Habit) (models.Habit, error) {
		if u.Name != nil {
			h.Name = strings.TrimSpace(*u.Name)
		}
		if u.Category != nil {
			h.Category = *u.Category
		}
		if u.TimeOfDay != nil {
			h.TimeOfDay = *u.TimeOfDay
		}
		if err := t.validator.ValidateFields(h.Name, h.Category, h.TimeOfDay); err != nil {
			return h, err
		}
		if t.nameTaken(h.Name, h.ID) {
			return h, fmt.Errorf("%w: %q", ErrDuplicateName, h.Name)
		}
		return h, nil
	})
}

func (t *Tracker) SetArchived(ref string, archived bool) (models.Habit, error) {
	return t.update(ref, func(h models.Habit) (models.Habit, error) {
		h.Archived = archived
		return h, nil
	})
}

func (t *Tracker) ToggleArchive(ref string) (models.Habit, error) {
	return t.update(ref, func(h models.Habit) (models.Habit, error) {
		h.Archived = !h.Archived
		return h, nil
	})
}

// Save persists the current list, e.g. to store the sample habits.
func (t *Tracker) Save() error {
	return t.commit(cloneAll(t.habits))
}

func (t *Tracker) update(ref string, fn func(models.Habit) (models.Habit, error)) (models.Habit, error) {
	i, err := t.index(ref)
	if err != nil {
		return models.Habit{}, err
	}
	h, err := fn(t.habits[i].Clone())
	if err != nil {
		return models.Habit{}, err
	}
	next := cloneAll(t.habits)
	next[i] = h
	if err := t.commit(next); err != nil {
		return models.Habit{}, err
	}
	return h.Clone(), nil
}

// commit saves next and only then makes it the current list.
func (t *Tracker) commit(next []models.Habit) error {
	if err := t.store.SaveHabits(constants.HabitsKey, next); err != nil {
		return fmt.Errorf("failed to save habits: %w", err)
	}
	t.habits = next
	t.sampled = false
	return nil
}

func cloneAll(habits []models.Habit) []models.Habit {
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = h.Clone()
	}
	return out
}

func filter(habits []models.Habit, archived bool) []models.Habit {
	out := []models.Habit{}
	for _, h := range habits {
		if h.Archived == archived {
			out = append(out, h.Clone())
		}
	}
	return out
}
