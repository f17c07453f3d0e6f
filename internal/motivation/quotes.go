package motivation

import (
	"math/rand/v2"

	"github.com/julianstephens/streakly/internal/models"
)

var quotes = []models.Quote{
	{
		Text:     "Success is not final, failure is not fatal: it is the courage to continue that counts.",
		Author:   "Winston Churchill",
		Category: models.CategoryProductivity,
	},
	{
		Text:     "The only bad workout is the one that didn't happen.",
		Author:   "Unknown",
		Category: models.CategoryFitness,
	},
	{
		Text:     "Peace comes from within. Do not seek it without.",
		Author:   "Buddha",
		Category: models.CategoryMindfulness,
	},
	{
		Text:     "Let food be thy medicine and medicine be thy food.",
		Author:   "Hippocrates",
		Category: models.CategoryNutrition,
	},
	{
		Text:     "Creativity is intelligence having fun.",
		Author:   "Albert Einstein",
		Category: models.CategoryCreativity,
	},
	{
		Text:     "Investment in knowledge pays the best interest.",
		Author:   "Benjamin Franklin",
		Category: models.CategoryLearning,
	},
}

// Quotes returns a copy of the quote catalog.
func Quotes() []models.Quote {
	out := make([]models.Quote, len(quotes))
	copy(out, quotes)
	return out
}

// Selector picks quotes uniformly at random.
type Selector struct {
	intn func(n int) int
}

// NewSelector returns a Selector backed by the runtime-seeded global source.
func NewSelector() *Selector {
	return &Selector{intn: rand.IntN}
}

// NewSeededSelector returns a reproducible Selector.
func NewSeededSelector(seed uint64) *Selector {
	r := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	return &Selector{intn: r.IntN}
}

// Select returns a quote from category, or from the whole catalog when the
// category has none. A matching category is never widened.
func (s *Selector) Select(category models.Category) models.Quote {
	pool := make([]models.Quote, 0, len(quotes))
	for _, q := range quotes {
		if q.Category == category {
			pool = append(pool, q)
		}
	}
	if len(pool) == 0 {
		pool = quotes
	}
	return pool[s.intn(len(pool))]
}

// TopCategory returns the category of the active habit with the highest
// streak (earliest wins ties), or productivity when there is none.
func TopCategory(habits []models.Habit) models.Category {
	var top *models.Habit
	for i := range habits {
		h := &habits[i]
		if h.Archived {
			continue
		}
		if top == nil || h.Streak > top.Streak {
			top = h
		}
	}
	if top == nil {
		return models.CategoryProductivity
	}
	return top.Category
}
