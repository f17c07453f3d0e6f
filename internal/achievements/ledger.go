package achievements

import (
	"time"

	"github.com/julianstephens/streakly/internal/models"
)

// Ledger maps achievement id to the first instant it was seen unlocked.
type Ledger map[string]time.Time

// Merge records any achievement in unlocked that the ledger has not seen and
// returns the unlocked list re-stamped with first-unlock instants, plus
// whether the ledger changed. Achievements that are no longer satisfied stay
// in the ledger but are not returned.
func (l Ledger) Merge(unlocked []models.Achievement) ([]models.Achievement, bool) {
	changed := false
	out := make([]models.Achievement, len(unlocked))
	for i, a := range unlocked {
		first, seen := l[a.ID]
		if !seen && a.UnlockedAt != nil {
			first = *a.UnlockedAt
			l[a.ID] = first
			changed = true
		}
		if seen || a.UnlockedAt != nil {
			at := first
			a.UnlockedAt = &at
		}
		out[i] = a
	}
	return out, changed
}
