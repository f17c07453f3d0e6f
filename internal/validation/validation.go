package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/streak"
	"github.com/julianstephens/streakly/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictEmptyName         ConflictType = "empty_name"
	ConflictDuplicateName     ConflictType = "duplicate_name"
	ConflictDuplicateID       ConflictType = "duplicate_id"
	ConflictInvalidCategory   ConflictType = "invalid_category"
	ConflictInvalidTimeOfDay  ConflictType = "invalid_time_of_day"
	ConflictInvalidDay        ConflictType = "invalid_day"
	ConflictDuplicateDay      ConflictType = "duplicate_day"
	ConflictStaleStreak       ConflictType = "stale_streak"
	ConflictOrphanCompletedAt ConflictType = "orphan_completion_time"
)

// Conflict represents a detected problem in a habit record
type Conflict struct {
	Type        ConflictType
	Description string
	HabitID     string
	Items       []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s\n", conflict.Description)
	}
	return b.String()
}

type Validator struct{}

func New() *Validator {
	return &Validator{}
}

// ValidateFields checks the user-editable fields of a single habit. It is
// what the CLI and TUI run before accepting input.
func (v *Validator) ValidateFields(name string, category models.Category, tod models.TimeOfDay) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("habit name cannot be empty")
	}
	if !category.Valid() {
		return fmt.Errorf("invalid category %q (expected one of %s)", category, joinCategories())
	}
	if !tod.Valid() {
		return fmt.Errorf("invalid time of day %q (expected one of %s)", tod, joinTimes())
	}
	return nil
}

// ValidateHabits checks a full habit list as loaded from storage.
func (v *Validator) ValidateHabits(habits []models.Habit) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seenIDs := make(map[string]bool)
	seenNames := make(map[string]string)

	for _, h := range habits {
		if seenIDs[h.ID] {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateID,
				Description: fmt.Sprintf("Duplicate habit id %q", h.ID),
				HabitID:     h.ID,
			})
		}
		seenIDs[h.ID] = true

		name := strings.TrimSpace(h.Name)
		if name == "" {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictEmptyName,
				Description: fmt.Sprintf("Habit %s has an empty name", h.ID),
				HabitID:     h.ID,
			})
		} else if otherID, ok := seenNames[strings.ToLower(name)]; ok {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateName,
				Description: fmt.Sprintf("Habit name %q is used more than once", name),
				HabitID:     h.ID,
				Items:       []string{otherID, h.ID},
			})
		} else {
			seenNames[strings.ToLower(name)] = h.ID
		}

		if !h.Category.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidCategory,
				Description: fmt.Sprintf("Habit %q has unknown category %q", h.Name, h.Category),
				HabitID:     h.ID,
			})
		}
		if !h.TimeOfDay.Valid() {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictInvalidTimeOfDay,
				Description: fmt.Sprintf("Habit %q has unknown time of day %q", h.Name, h.TimeOfDay),
				HabitID:     h.ID,
			})
		}

		result.Conflicts = append(result.Conflicts, v.validateDays(h)...)

		if want := streak.Compute(h.CompletedDates); want != h.Streak && !streakAsOfLastDay(h) {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictStaleStreak,
				Description: fmt.Sprintf("Habit %q caches streak %d but its completions give %d", h.Name, h.Streak, want),
				HabitID:     h.ID,
			})
		}
	}

	return result
}

// streakAsOfLastDay reports whether the cached streak was right on the day of
// the habit's latest completion, i.e. it only went stale by the calendar.
func streakAsOfLastDay(h models.Habit) bool {
	var last time.Time
	for _, d := range h.CompletedDates {
		t, err := utils.ParseDayKey(d)
		if err == nil && t.After(last) {
			last = t
		}
	}
	return !last.IsZero() && streak.ComputeFrom(h.CompletedDates, last) == h.Streak
}

func (v *Validator) validateDays(h models.Habit) []Conflict {
	var conflicts []Conflict
	seen := make(map[string]bool)
	var bad, dupes []string
	for _, d := range h.CompletedDates {
		if !utils.ValidateDayKey(d) {
			bad = append(bad, d)
			continue
		}
		if seen[d] {
			dupes = append(dupes, d)
		}
		seen[d] = true
	}
	if len(bad) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictInvalidDay,
			Description: fmt.Sprintf("Habit %q has malformed completion days: %s", h.Name, strings.Join(bad, ", ")),
			HabitID:     h.ID,
			Items:       bad,
		})
	}
	if len(dupes) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateDay,
			Description: fmt.Sprintf("Habit %q lists the same day more than once: %s", h.Name, strings.Join(dupes, ", ")),
			HabitID:     h.ID,
			Items:       dupes,
		})
	}

	var orphans []string
	for day := range h.CompletionTimes {
		if !seen[day] {
			orphans = append(orphans, day)
		}
	}
	if len(orphans) > 0 {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictOrphanCompletedAt,
			Description: fmt.Sprintf("Habit %q records completion times for days not marked done", h.Name),
			HabitID:     h.ID,
			Items:       orphans,
		})
	}
	return conflicts
}

func joinCategories() string {
	parts := make([]string, 0, len(models.Categories()))
	for _, c := range models.Categories() {
		parts = append(parts, string(c))
	}
	return strings.Join(parts, ", ")
}

func joinTimes() string {
	parts := make([]string, 0, len(models.TimesOfDay()))
	for _, t := range models.TimesOfDay() {
		parts = append(parts, string(t))
	}
	return strings.Join(parts, ", ")
}
