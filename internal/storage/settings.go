package storage

import (
	"fmt"
	"strconv"

	"github.com/julianstephens/streakly/internal/models"
)

// Settings are stored as key/value rows so new settings need no migration.
const (
	settingGraphDays     = "graph_days"
	settingOverviewLimit = "overview_limit"
	settingLogDays       = "log_days"
)

// EncodeSettings flattens s into settings table rows.
func EncodeSettings(s models.Settings) map[string]string {
	return map[string]string{
		settingGraphDays:     strconv.Itoa(s.GraphDays),
		settingOverviewLimit: strconv.Itoa(s.OverviewLimit),
		settingLogDays:       strconv.Itoa(s.LogDays),
	}
}

// DecodeSettings reads settings table rows over the defaults. Unknown keys
// are ignored.
func DecodeSettings(rows map[string]string) (models.Settings, error) {
	s := models.DefaultSettings()
	fields := map[string]*int{
		settingGraphDays:     &s.GraphDays,
		settingOverviewLimit: &s.OverviewLimit,
		settingLogDays:       &s.LogDays,
	}
	for key, value := range rows {
		dst, ok := fields[key]
		if !ok {
			continue
		}
		n, err := strconv.Atoi(value)
		if err != nil {
			return models.Settings{}, fmt.Errorf("parsing %s: %w", key, err)
		}
		*dst = n
	}
	return s, nil
}
