// Package storage persists habit lists and the achievement unlock ledger.
package storage

import (
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/streakly/internal/models"
)

var (
	// ErrNotFound is returned when no habit list has been saved under a key.
	ErrNotFound = errors.New("not found")
	// ErrNotInitialized is returned by Load when Init has never run.
	ErrNotInitialized = errors.New("storage not initialized, run 'streakly init' first")
	// ErrSchemaOutdated is returned when migrations are pending.
	ErrSchemaOutdated = errors.New("database schema is out of date")
)

type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Habits. LoadHabits returns ErrNotFound when key was never saved; an
	// empty saved list is returned as an empty slice.
	LoadHabits(key string) ([]models.Habit, error)
	SaveHabits(key string, habits []models.Habit) error

	// Achievement unlock ledger
	LoadUnlocks() (map[string]time.Time, error)
	SaveUnlocks(map[string]time.Time) error

	// Display settings. GetSettings returns the defaults when none were saved.
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Utils
	GetConfigPath() string
}

// Migrator is implemented by stores with a versioned SQL schema.
type Migrator interface {
	SchemaVersion() (current, latest int, err error)
	// Migrate applies pending migrations and returns how many ran.
	Migrate(logFn func(string)) (int, error)
}

// CheckSchema returns ErrSchemaOutdated when m has pending migrations.
func CheckSchema(m Migrator) error {
	current, latest, err := m.SchemaVersion()
	if err != nil {
		return err
	}
	if current < latest {
		return fmt.Errorf("%w: version %d, latest %d", ErrSchemaOutdated, current, latest)
	}
	return nil
}
