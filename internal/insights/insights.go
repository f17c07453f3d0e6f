package insights

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/utils"
)

const morningTip = "Consider adding a morning habit to start your day right. Morning routines can boost productivity!"

// Generate returns observations about the given (non-archived) habits for
// today. Rules run in a fixed order and each appends at most one insight.
func Generate(habits []models.Habit) []models.Insight {
	return GenerateFor(habits, utils.TodayKey())
}

// GenerateFor is Generate with an explicit day key for "today".
func GenerateFor(habits []models.Habit, today string) []models.Insight {
	out := []models.Insight{}

	if best, ok := maxStreak(habits); ok && best >= constants.InsightHighlightStreak {
		out = append(out, models.Insight{
			Type:    models.InsightSuccess,
			Message: fmt.Sprintf("Impressive! You've maintained a %d-day streak. Keep up the momentum!", best),
		})
	}

	if pending := countPending(habits, today); pending > 0 {
		out = append(out, models.Insight{
			Type:    models.InsightWarning,
			Message: fmt.Sprintf("You have %d habits left to complete today. You've got this!", pending),
		})
	}

	if countMorning(habits) == 0 {
		out = append(out, models.Insight{
			Type:    models.InsightTip,
			Message: morningTip,
		})
	}

	return out
}

// maxStreak reports false for an empty list, which has no maximum.
func maxStreak(habits []models.Habit) (int, bool) {
	if len(habits) == 0 {
		return 0, false
	}
	best := habits[0].Streak
	for _, h := range habits[1:] {
		best = max(best, h.Streak)
	}
	return best, true
}

func countPending(habits []models.Habit, today string) int {
	n := 0
	for _, h := range habits {
		if !h.CompletedOn(today) {
			n++
		}
	}
	return n
}

func countMorning(habits []models.Habit) int {
	n := 0
	for _, h := range habits {
		if h.TimeOfDay == models.TimeMorning {
			n++
		}
	}
	return n
}
