package models

import (
	"fmt"

	"github.com/julianstephens/streakly/internal/constants"
)

// Settings are display preferences stored alongside the habits.
type Settings struct {
	GraphDays     int `json:"graph_days"`     // days in the dashboard completion grid
	OverviewLimit int `json:"overview_limit"` // habits shown in the streak overview
	LogDays       int `json:"log_days"`       // default window of `streakly log`
}

func DefaultSettings() Settings {
	return Settings{
		GraphDays:     constants.GraphDays,
		OverviewLimit: constants.OverviewLimit,
		LogDays:       constants.DefaultLogDays,
	}
}

// Validate checks every value against its allowed range.
func (s Settings) Validate() error {
	if s.GraphDays < 1 || s.GraphDays > constants.MaxGraphDays {
		return fmt.Errorf("graph days must be between 1 and %d, got %d", constants.MaxGraphDays, s.GraphDays)
	}
	if s.OverviewLimit < 1 || s.OverviewLimit > constants.MaxOverviewLimit {
		return fmt.Errorf("overview limit must be between 1 and %d, got %d", constants.MaxOverviewLimit, s.OverviewLimit)
	}
	if s.LogDays < 1 || s.LogDays > constants.MaxLogDays {
		return fmt.Errorf("log days must be between 1 and %d, got %d", constants.MaxLogDays, s.LogDays)
	}
	return nil
}
