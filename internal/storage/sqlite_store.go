package storage

import (
	"database/sql"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/julianstephens/streakly/internal/logger"
	"github.com/julianstephens/streakly/internal/migration"
	"github.com/julianstephens/streakly/internal/models"
	"github.com/julianstephens/streakly/internal/streak"
	"github.com/julianstephens/streakly/internal/utils"
	"github.com/julianstephens/streakly/migrations"
)

type SQLiteStore struct {
	path string
	db   *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{
		path: path,
	}
}

func (s *SQLiteStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	if _, err := s.Migrate(func(msg string) { logger.Info(msg) }); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func (s *SQLiteStore) Load() error {
	if s.db != nil {
		return nil
	}

	if _, err := os.Stat(s.path); os.IsNotExist(err) {
		return ErrNotInitialized
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	s.db = db

	return s.validateSchemaVersion()
}

func (s *SQLiteStore) Close() error {
	if s.db != nil {
		err := s.db.Close()
		s.db = nil
		return err
	}
	return nil
}

// tableExists checks if a table exists in the SQLite database.
// The check is case-insensitive to match SQLite's behavior.
func (s *SQLiteStore) tableExists(tableName string) (bool, error) {
	var count int
	row := s.db.QueryRow("SELECT count(*) FROM sqlite_master WHERE type='table' AND name COLLATE NOCASE = ?", tableName)
	if err := row.Scan(&count); err != nil {
		return false, err
	}
	return count > 0, nil
}

var _ Migrator = (*SQLiteStore)(nil)

// Migrate applies pending migrations to an opened database.
func (s *SQLiteStore) Migrate(logFn func(string)) (int, error) {
	if s.db == nil {
		return 0, ErrNotInitialized
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ApplyMigrations(logFn)
}

func (s *SQLiteStore) validateSchemaVersion() error {
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return fmt.Errorf("failed to access sqlite migrations: %w", err)
	}

	runner := migration.NewRunner(s.db, subFS)
	return runner.ValidateVersion()
}

// SchemaVersion reports the applied and the latest known schema version.
func (s *SQLiteStore) SchemaVersion() (current, latest int, err error) {
	if s.db == nil {
		return 0, 0, ErrNotInitialized
	}
	subFS, err := fs.Sub(migrations.FS, "sqlite")
	if err != nil {
		return 0, 0, fmt.Errorf("failed to access sqlite migrations: %w", err)
	}
	runner := migration.NewRunner(s.db, subFS)
	if current, err = runner.GetCurrentVersion(); err != nil {
		return 0, 0, err
	}
	if latest, err = runner.GetLatestVersion(); err != nil {
		return 0, 0, err
	}
	return current, latest, nil
}

func (s *SQLiteStore) LoadHabits(key string) ([]models.Habit, error) {
	exists, err := s.tableExists("lists")
	if err != nil || !exists {
		return nil, ErrNotFound
	}

	var found int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM lists WHERE key = ?", key).Scan(&found); err != nil {
		return nil, fmt.Errorf("failed to look up habit list: %w", err)
	}
	if found == 0 {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(`
		SELECT id, name, category, time_of_day, archived, created_at
		FROM habits WHERE list_key = ? ORDER BY position`, key)
	if err != nil {
		return nil, fmt.Errorf("failed to query habits: %w", err)
	}
	defer rows.Close()

	habits := []models.Habit{}
	index := make(map[string]int)
	for rows.Next() {
		var h models.Habit
		var archived int
		var createdAt string
		if err := rows.Scan(&h.ID, &h.Name, &h.Category, &h.TimeOfDay, &archived, &createdAt); err != nil {
			return nil, err
		}
		h.Archived = archived != 0
		h.CreatedAt, err = time.Parse(time.RFC3339, createdAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		h.CompletedDates = []string{}
		index[h.ID] = len(habits)
		habits = append(habits, h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := s.loadCompletions(key, habits, index); err != nil {
		return nil, err
	}

	today := utils.Now()
	for i := range habits {
		habits[i].Streak = streak.ComputeFrom(habits[i].CompletedDates, today)
	}
	return habits, nil
}

func (s *SQLiteStore) loadCompletions(key string, habits []models.Habit, index map[string]int) error {
	rows, err := s.db.Query(`
		SELECT c.habit_id, c.day, c.completed_at
		FROM habit_completions c JOIN habits h ON h.id = c.habit_id
		WHERE h.list_key = ? ORDER BY c.day`, key)
	if err != nil {
		return fmt.Errorf("failed to query completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var habitID, day string
		var completedAt sql.NullString
		if err := rows.Scan(&habitID, &day, &completedAt); err != nil {
			return err
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
			h.CompletionTimes[day] = completedAt.String
		}
	}
	return rows.Err()
}

// SaveHabits replaces the list stored under key in one transaction.
func (s *SQLiteStore) SaveHabits(key string, habits []models.Habit) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM habit_completions WHERE habit_id IN (SELECT id FROM habits WHERE list_key = ?)`, key); err != nil {
		return fmt.Errorf("failed to clear completions: %w", err)
	}
	if _, err := tx.Exec(`DELETE FROM habits WHERE list_key = ?`, key); err != nil {
		return fmt.Errorf("failed to clear habits: %w", err)
	}
	if _, err := tx.Exec(`INSERT OR IGNORE INTO lists (key) VALUES (?)`, key); err != nil {
		return fmt.Errorf("failed to record habit list: %w", err)
	}

	for pos, h := range habits {
		archived := 0
		if h.Archived {
			archived = 1
		}
		_, err := tx.Exec(`
			INSERT INTO habits (id, list_key, position, name, category, time_of_day, archived, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			h.ID, key, pos, h.Name, string(h.Category), string(h.TimeOfDay), archived, h.CreatedAt.Format(time.RFC3339))
		if err != nil {
			return fmt.Errorf("failed to save habit %q: %w", h.Name, err)
		}

		for _, day := range h.CompletedDates {
			var completedAt sql.NullString
			if at, ok := h.CompletionTimes[day]; ok {
				completedAt = sql.NullString{String: at, Valid: true}
			}
			_, err := tx.Exec(`INSERT OR IGNORE INTO habit_completions (habit_id, day, completed_at) VALUES (?, ?, ?)`,
				h.ID, day, completedAt)
			if err != nil {
				return fmt.Errorf("failed to save completion %s for %q: %w", day, h.Name, err)
			}
		}
	}

	return tx.Commit()
}

func (s *SQLiteStore) LoadUnlocks() (map[string]time.Time, error) {
	rows, err := s.db.Query(`SELECT id, unlocked_at FROM achievement_unlocks`)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return map[string]time.Time{}, nil
		}
		return nil, fmt.Errorf("failed to query achievement unlocks: %w", err)
	}
	defer rows.Close()

	out := make(map[string]time.Time)
	for rows.Next() {
		var id, raw string
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		at, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return nil, fmt.Errorf("failed to parse unlocked_at for %s: %w", id, err)
		}
		out[id] = at
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveUnlocks(unlocks map[string]time.Time) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM achievement_unlocks`); err != nil {
		return fmt.Errorf("failed to clear achievement unlocks: %w", err)
	}
	for id, at := range unlocks {
		if _, err := tx.Exec(`INSERT INTO achievement_unlocks (id, unlocked_at) VALUES (?, ?)`, id, at.Format(time.RFC3339)); err != nil {
			return fmt.Errorf("failed to save unlock %s: %w", id, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetSettings() (models.Settings, error) {
	rows, err := s.db.Query(`SELECT key, value FROM settings`)
	if err != nil {
		if strings.Contains(err.Error(), "no such table") {
			return models.DefaultSettings(), nil
		}
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
	return DecodeSettings(values)
}

func (s *SQLiteStore) SaveSettings(settings models.Settings) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for key, value := range EncodeSettings(settings) {
		if _, err := tx.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value); err != nil {
			return fmt.Errorf("failed to save setting %s: %w", key, err)
		}
	}
	return tx.Commit()
}

func (s *SQLiteStore) GetConfigPath() string {
	return s.path
}

// GetDB returns the underlying database connection, or nil before Init or Load.
func (s *SQLiteStore) GetDB() *sql.DB {
	return s.db
}
