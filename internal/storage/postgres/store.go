// Package postgres is the PostgreSQL storage backend.
package postgres

import (
	"database/sql"
	"fmt"
	"io/fs"
	"strings"
	"time"

	_ "github.com/lib/pq"

	"github.com/julianstephens/streakly/internal/constants"
	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/migration"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/storage"
	"github.com/julianstephens/streakly/internal/streak"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/migrations"
)

type Store struct {
	connStr string
	db      *sql.DB
}

var (
	_ storage.Provider = (*Store)(nil)
	_ storage.Migrator = (*Store)(nil)
)

func New(connStr string) *Store {
	return &Store{
		connStr: withSearchPath(connStr),
	}
}

func (s *Store) open() (*sql.DB, error) {
	db, err := sql.Open("postgres", s.connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		db.Close()
		if strings.Contains(err.Error(), "SSL is not enabled on the server") && !hasSSLMode(s.connStr) {
			return nil, fmt.Errorf("failed to connect to database: %w (hint: try adding ?sslmode=disable to your connection string)", err)
		}
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}

	if _, err := db.Exec("CREATE SCHEMA IF NOT EXISTS " + constants.AppName); err != nil {
		db.Close()
		return fmt.Errorf("failed to create schema: %w", err)
	}
	s.db = db

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Migrate applies pending migrations to an opened database.
func (s *Store) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return 0, err
	}
	return runner.ApplyMigrations(logFn)
}

func (s *Store) Load() error {
	if s.db != nil {
		return nil
	}

	db, err := s.open()
	if err != nil {
		return err
	}
	s.db = db

	runner, err := s.runner()
	if err != nil {
		return err
	}
	current, err := runner.GetCurrentVersion()
	if err != nil {
		return err
	}
	if current == 0 {
		s.Close()
		return storage.ErrNotInitialized
	}
	return runner.ValidateVersion()
}

// SchemaVersion reports the applied and the latest known schema version.
func (s *Store) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, storage.ErrNotInitialized
	}
	runner, err := s.runner()
	if err != nil {
		return 0, 0, err
	}
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *Store) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

func (s *Store) runner() (*migration.Runner, error) {
	subFS, err := fs.Sub(migrations.FS, "postgres")
	if err != nil {
		return nil, fmt.Errorf("failed to access postgres migrations: %w", err)
	}
	return migration.NewDialectRunner(s.db, subFS, migration.Postgres), nil
}

func (s *Store) LoadHabits(key string) ([]models.Habit, error) {
	var found int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM lists WHERE key = $1", key).Scan(&found); err != nil {
		return nil, fmt.Errorf("failed to look up habit list: %w", err)
	}
	if found == 0 {
		return nil, storage.ErrNotFound
	}

	rows, err := s.db.Query(`
		SELECT id, name, category, time_of_day, archived, created_at
		FROM habits WHERE list_key = $1 ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	index := make(map[string]int)
	for rows.Next() {
		var h models.Habit
		var category, tod string
		if err := rows.Scan(&h.ID, &h.Name, &category, &tod, &h.Archived, &h.CreatedAt); err != nil {
			return nil, err
		}
		h.Category = models.Category(category)
		h.TimeOfDay = models.TimeOfDay(tod)
		h.CompletedDates = []string{}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	crow, err := s.db.Query(`
		SELECT c.habit_id, c.day, c.completed_at
		FROM habit_completions c JOIN habits h ON h.id = c.habit_id
		WHERE h.list_key = $1 ORDER BY c.day`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query completions: %w", err)
	}
	defer crow.Close()

	for crow.Next() {
		var habitID, day string
		var completedAt sql.NullTime
		if err := crow.Scan(&habitID, &day, &completedAt); err != nil {
			return nil, err
		}
		i, ok := index[habitID]
		if !ok {
			continue
		}
		h := &habits[i]
		h.CompletedDates = append(h.CompletedDates, day)
		if completedAt.Valid {
			if h.CompletionTimes == nil {
				h.CompletionTimes = make(map[string]string)
			}
			h.CompletionTimes[day] = completedAt.Time.Local().Format(time.RFC3339)
		}
	}
	if err := crow.Err(); err != nil {
		return nil, err
	}

	today := utils.Now()
	for i := range habits {
		habits[i].Streak = streak.ComputeFrom(habits[i].CompletedDates, today)
	}
	return habits, nil
}

func (s *Store) SaveHabits(key string, habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM habit_completions WHERE habit_id IN (SELECT id FROM habits WHERE list_key = $1)`, key); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits WHERE list_key = $1`, key); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}
	if _, err := tx.Exec(`INSERT INTO lists (key) VALUES ($1) ON CONFLICT (key) DO NOTHING`, key); err != nil {
		return fmt.Errorf("failed to record habit list: %w", err)
	}

	for pos, h := range habits {
		_, err := tx.Exec(`
			INSERT INTO habits (id, list_key, position, name, category, time_of_day, archived, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			h.ID, key, pos, h.Name, string(h.Category), string(h.TimeOfDay), h.Archived, h.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to save habit %q: %w", h.Name, err)
		}

		for _, day := range h.CompletedDates {
			var completedAt sql.NullTime
			if at, ok := h.CompletedAt(day); ok {
				completedAt = sql.NullTime{Time: at, Valid: true}
			}
			_, err := tx.Exec(`
				INSERT INTO habit_completions (habit_id, day, completed_at) VALUES ($1, $2, $3)
				ON CONFLICT (habit_id, day) DO NOTHING`,
				h.ID, day, completedAt)
			if err != nil {
				return fmt.Errorf("failed to save completion %s for %q: %w", day, h.Name, err)
			}
		}
	}

	return tx.Commit()
}

func (s *Store) LoadUnlocks() (map[string]time.Time, error) {
	rows, err := s.db.Query(`SELECT id, unlocked_at FROM achievement_unlocks`)
	if err != nil {
		return nil, fmt.Errorf("failed to query achievement unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id string
		var at time.Time
		if err := rows.Scan(&id, &at); err != nil {
			return nil, err
		}
		out[id] = at.Local()
	}
	return out, rows.Err()
}

func (s *Store) SaveUnlocks(unlocks map[string]time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM achievement_unlocks`); err != nil {
		return fmt.Errorf("failed to clear achievement unlocks: %w", err)
	}
	for id, at := range unlocks {
		if _, err := tx.Exec(`INSERT INTO achievement_unlocks (id, unlocked_at) VALUES ($1, $2)`, id, at); err != nil {
			return fmt.Errorf("failed to save unlock %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *Store) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to query settings: %w", err)
	}
	defer rows.Close()

	values := make(map[string]string)
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return models.Settings{}, err
		}
		values[key] = value
	}
	if err := rows.Err(); err != nil {
		return models.Settings{}, err
	}
	return storage.DecodeSettings(values)
}

func (s *Store) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range storage.EncodeSettings(settings) {
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES ($1, $2)
			ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *Store) GetConfigPath() string {
	// non-sensitive identifier instead of the connection string
	return "postgresql"
}
