package achievements

import (
	"time"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
)

const (
	WeekWarriorID    = "week-warrior"
	EarlyBirdID      = "early-bird"
	StreakMasterID   = "streak-master"
	HabitCollectorID = "habit-collector"
)

var catalog = []models.Achievement{
	{
		ID:          WeekWarriorID,
		Title:       "Week Warrior",
		Description: "Complete a habit for 7 consecutive days",
		Icon:        "🏆",
	},
	{
		ID:          EarlyBirdID,
		Title:       "Early Bird",
		Description: "Complete all morning habits before 9 AM",
		Icon:        "🌅",
	},
	{
		ID:          StreakMasterID,
		Title:       "Streak Master",
		Description: "Maintain a 30-day streak",
		Icon:        "🔥",
	},
	{
		ID:          HabitCollectorID,
		Title:       "Habit Collector",
		Description: "Create habits in 5 different categories",
		Icon:        "🌟",
	},
}

// Catalog returns a copy of every achievement definition, locked.
func Catalog() []models.Achievement {
	out := make([]models.Achievement, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the definition with the given id.
func Lookup(id string) (models.Achievement, bool) {
	for _, a := range catalog {
		if a.ID == id {
			return a, true
		}
	}
	return models.Achievement{}, false
}

type rule struct {
	id        string
	satisfied func(habits []models.Habit, now time.Time) bool
}

// Evaluation order is the output order.
var rules = []rule{
	{id: WeekWarriorID, satisfied: func(habits []models.Habit, _ time.Time) bool {
		return anyStreakAtLeast(habits, constants.WeekWarriorStreak)
	}},
	{id: StreakMasterID, satisfied: func(habits []models.Habit, _ time.Time) bool {
		return anyStreakAtLeast(habits, constants.StreakMasterStreak)
	}},
	{id: HabitCollectorID, satisfied: func(habits []models.Habit, _ time.Time) bool {
		return distinctCategories(habits) >= constants.CollectorCategories
	}},
	{id: EarlyBirdID, satisfied: morningHabitsDoneEarly},
}

// Evaluate returns the achievements currently satisfied by habits, each
// stamped with now. Nothing is accumulated between calls; archived habits
// are not filtered here, callers pass the list they want judged.
func Evaluate(habits []models.Habit, now time.Time) []models.Achievement {
	unlocked := []models.Achievement{}
	for _, r := range rules {
		if !r.satisfied(habits, now) {
			continue
		}
		a, ok := Lookup(r.id)
		if !ok {
			continue
		}
		at := now
		a.UnlockedAt = &at
		unlocked = append(unlocked, a)
	}
	return unlocked
}

func anyStreakAtLeast(habits []models.Habit, n int) bool {
	for _, h := range habits {
		if h.Streak >= n {
			return true
		}
	}
	return false
}

func distinctCategories(habits []models.Habit) int {
	seen := make(map[models.Category]struct{})
	for _, h := range habits {
		seen[h.Category] = struct{}{}
	}
	return len(seen)
}

// morningHabitsDoneEarly needs recorded completion times. Habits completed
// without one (imported data, Toggle without a clock) can never satisfy it.
func morningHabitsDoneEarly(habits []models.Habit, now time.Time) bool {
	today := now.Format(constants.DateFormat)
	morning := 0
	for _, h := range habits {
		if h.TimeOfDay != models.TimeMorning {
			continue
		}
		morning++
		if !h.CompletedOn(today) {
			return false
		}
		at, ok := h.CompletedAt(today)
		if !ok {
			return false
		}
		if at.In(now.Location()).Hour() >= constants.EarlyBirdCutoffHour {
			return false
		}
	}
	return morning > 0
}
