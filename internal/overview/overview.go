package overview

import (
	"fmt"
	"slices"

	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

// Bar is one row of the streak overview.
type Bar struct {
	HabitID  string
	Name     string
	Streak   int
	Fraction float64 // Streak relative to the longest shown streak, 0..1
}

func (b Bar) Label() string {
	return DaysLabel(b.Streak)
}

// DaysLabel renders "1 day" or "N days".
func DaysLabel(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}

// TopStreaks returns up to limit active habits ordered by streak, longest
// first. Equal streaks keep their input order.
func TopStreaks(habits []models.Habit, limit int) []Bar {
	active := make([]models.Habit, 0, len(habits))
	for _, h := range habits {
		if !h.Archived {
			active = append(active, h)
		}
	}
	slices.SortStableFunc(active, func(a, b models.Habit) int {
		return b.Streak - a.Streak
	})
	if limit >= 0 && len(active) > limit {
		active = active[:limit]
	}

	bars := make([]Bar, len(active))
	if len(active) == 0 {
		return bars
	}
	longest := active[0].Streak
	for i, h := range active {
		bars[i] = Bar{HabitID: h.ID, Name: h.Name, Streak: h.Streak}
		if longest > 0 {
			bars[i].Fraction = float64(h.Streak) / float64(longest)
		}
	}
	return bars
}

// Cell is one day of a habit's completion graph.
type Cell struct {
	Day     string
	Weekday string
	Done    bool
}

// Graph returns the trailing days of h, oldest first, ending today.
func Graph(h models.Habit, days int) []Cell {
	keys := utils.TrailingDayKeys(days)
	cells := make([]Cell, len(keys))
	for i, k := range keys {
		cells[i] = Cell{Day: k, Weekday: utils.Weekday(k), Done: h.CompletedOn(k)}
	}
	return cells
}
