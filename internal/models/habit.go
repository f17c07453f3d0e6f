package models

import (
	"slices"
	"time"
)

type Category string

const (
	CategoryHealth       Category = "health"
	CategoryProductivity Category = "productivity"
	CategoryMindfulness  Category = "mindfulness"
	CategoryFitness      Category = "fitness"
	CategoryCreativity   Category = "creativity"
	CategoryLearning     Category = "learning"
	CategorySocial       Category = "social"
	CategoryFinance      Category = "finance"
	CategorySelfcare     Category = "selfcare"
	CategoryNutrition    Category = "nutrition"
)

// Categories returns every category in display order.
func Categories() []Category {
	return []Category{
		CategoryHealth,
		CategoryProductivity,
		CategoryMindfulness,
		CategoryFitness,
		CategoryCreativity,
		CategoryLearning,
		CategorySocial,
		CategoryFinance,
		CategorySelfcare,
		CategoryNutrition,
	}
}

func (c Category) Valid() bool {
	return slices.Contains(Categories(), c)
}

type TimeOfDay string

const (
	TimeMorning   TimeOfDay = "morning"
	TimeAfternoon TimeOfDay = "afternoon"
	TimeEvening   TimeOfDay = "evening"
	TimeAnytime   TimeOfDay = "anytime"
)

// TimesOfDay returns every time-of-day slot in display order.
func TimesOfDay() []TimeOfDay {
	return []TimeOfDay{TimeMorning, TimeAfternoon, TimeEvening, TimeAnytime}
}

func (t TimeOfDay) Valid() bool {
	return slices.Contains(TimesOfDay(), t)
}

// Habit is a tracked daily practice. Streak is derived from CompletedDates
// and must only be changed through the streak package.
type Habit struct {
	ID              string            `json:"id"`
	Name            string            `json:"name"`
	Category        Category          `json:"category"`
	TimeOfDay       TimeOfDay         `json:"timeOfDay"`
	CompletedDates  []string          `json:"completedDates"`            // YYYY-MM-DD keys
	CompletionTimes map[string]string `json:"completionTimes,omitempty"` // day key -> RFC3339
	Streak          int               `json:"streak"`
	Archived        bool              `json:"archived,omitempty"`
	CreatedAt       time.Time         `json:"createdAt"`
}

// CompletedOn reports whether day is in the habit's completion set.
func (h Habit) CompletedOn(day string) bool {
	return slices.Contains(h.CompletedDates, day)
}

// CompletedAt returns the recorded completion instant for day, if any.
func (h Habit) CompletedAt(day string) (time.Time, bool) {
	raw, ok := h.CompletionTimes[day]
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Clone returns a deep copy so callers can derive new values without
// aliasing the original's slice or map.
func (h Habit) Clone() Habit {
	out := h
	out.CompletedDates = slices.Clone(h.CompletedDates)
	if h.CompletionTimes != nil {
		out.CompletionTimes = make(map[string]string, len(h.CompletionTimes))
		for k, v := range h.CompletionTimes {
			out.CompletionTimes[k] = v
		}
	}
	return out
}
