package tracker

import (
	"time"

	"github.com/julianstephens/streakly/internal/achievements"
	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/insights"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/motivation"
	"github.com/julianstephens/streakly/internal/overview"
	"github.com/julianstephens/streakly/internal/utils"
)

// Dashboard is everything derived from the habit list for one render.
type Dashboard struct {
	Today          string
	GraphDays      int
	GeneratedAt    time.Time
	Active         []models.Habit
	CompletedToday int
	Quote          models.Quote
	Unlocked       []models.Achievement
	Locked         []models.Achievement
	Overview       []overview.Bar
	Insights       []models.Insight
}

// Dashboard derives the quote, achievements, overview and insights. Newly
// unlocked achievements are recorded in the ledger.
func (t *Tracker) Dashboard() Dashboard {
	now := utils.Now()
	today := now.Format(constants.DateFormat)
	active := t.Active()

	d := Dashboard{
		Today:       today,
		GraphDays:   t.settings.GraphDays,
		GeneratedAt: now,
		Active:      active,
		Quote:       t.Quote(""),
		Overview:    overview.TopStreaks(t.habits, t.settings.OverviewLimit),
		Insights:    insights.GenerateFor(active, today),
	}
	for _, h := range active {
		if h.CompletedOn(today) {
			d.CompletedToday++
		}
	}

	d.Unlocked = t.Achievements(now)
	unlocked := make(map[string]bool, len(d.Unlocked))
	for _, a := range d.Unlocked {
		unlocked[a.ID] = true
	}
	d.Locked = []models.Achievement{}
	for _, a := range achievements.Catalog() {
		if !unlocked[a.ID] {
			d.Locked = append(d.Locked, a)
		}
	}
	return d
}

// Quote selects a quote for category, or for the category of the longest
// active streak when category is empty.
func (t *Tracker) Quote(category models.Category) models.Quote {
	if category == "" {
		category = motivation.TopCategory(t.habits)
	}
	return t.quotes.Select(category)
}

// Achievements evaluates the active habits at now and stamps each unlocked
// achievement with the first time it was seen.
func (t *Tracker) Achievements(now time.Time) []models.Achievement {
	merged, changed := t.ledger.Merge(achievements.Evaluate(t.Active(), now))
	if changed {
		if err := t.store.SaveUnlocks(t.ledger); err != nil {
			logger.Warn("Failed to save achievement unlocks", "error", err)
		}
	}
	return merged
}

// Graph returns the trailing completion grid of the referenced habit.
func (t *Tracker) Graph(ref string, days int) ([]overview.Cell, error) {
	h, err := t.Find(ref)
	if err != nil {
		return nil, err
	}
	return overview.Graph(h, days), nil
}
