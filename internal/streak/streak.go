// Package streak computes consecutive-day streaks and owns every mutation of
// a habit's completion set, so the cached Habit.Streak never drifts from
// Habit.CompletedDates.
package streak

import (
	"slices"
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// Compute returns the number of consecutive completed days ending at and
// including today. A missing today yields 0.
func Compute(days []string) int {
	return ComputeFrom(days, utils.Now())
}

// ComputeFrom is Compute anchored at the calendar day of today.
func ComputeFrom(days []string, today time.Time) int {
	if len(days) == 0 {
		return 0
	}
	set := make(map[string]struct{}, len(days))
	for _, d := range days {
		set[d] = struct{}{}
	}

	// Terminates because the set is finite and offsets only grow.
	count := 0
	for {
		if _, ok := set[utils.DayKeyFrom(today, count)]; !ok {
			return count
		}
		count++
	}
}

// WithCompletions returns a copy of h whose completion set is days (deduped
// and sorted) and whose streak is recomputed as of today.
func WithCompletions(h models.Habit, days []string, today time.Time) models.Habit {
	out := h.Clone()
	sorted := slices.Clone(days)
	slices.Sort(sorted)
	out.CompletedDates = slices.Compact(sorted)
	if out.CompletedDates == nil {
		out.CompletedDates = []string{}
	}
	out.Streak = ComputeFrom(out.CompletedDates, today)
	return out
}

// Toggle flips the completion of the given day key and recomputes the
// streak anchored at that day. The input habit is not modified; a malformed
// day key yields an unchanged copy.
func Toggle(h models.Habit, today string) models.Habit {
	anchor, err := utils.ParseDayKey(today)
	if err != nil {
		return h.Clone()
	}
	out, _ := toggle(h, today, anchor)
	return out
}

// ToggleAt toggles today's completion like Toggle and also records the
// completion instant, which the Early Bird achievement reads.
func ToggleAt(h models.Habit, now time.Time) models.Habit {
	today := now.Format(constants.DateFormat)
	out, completed := toggle(h, today, now)
	if completed {
		if out.CompletionTimes == nil {
			out.CompletionTimes = make(map[string]string)
		}
		out.CompletionTimes[today] = now.Format(time.RFC3339)
	}
	return out
}

func toggle(h models.Habit, today string, anchor time.Time) (models.Habit, bool) {
	var days []string
	completed := !h.CompletedOn(today)
	if completed {
		days = append(slices.Clone(h.CompletedDates), today)
	} else {
		days = slices.DeleteFunc(slices.Clone(h.CompletedDates), func(d string) bool {
			return d == today
		})
	}

	out := WithCompletions(h, days, anchor)
	if !completed && out.CompletionTimes != nil {
		delete(out.CompletionTimes, today)
		if len(out.CompletionTimes) == 0 {
			out.CompletionTimes = nil
		}
	}
	return out, completed
}

// Refresh recomputes the streak of every habit as of today. Used after
// loading, since a cached streak goes stale once the calendar day rolls over.
func Refresh(habits []models.Habit) []models.Habit {
	today := utils.Now()
	out := make([]models.Habit, len(habits))
	for i, h := range habits {
		out[i] = WithCompletions(h, h.CompletedDates, today)
	}
	return out
}
