package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/streakly/internal/models"
)

const jsonStoreVersion = 1

type document struct {
	Version  int                       `json:"version"`
	Lists    map[string][]models.Habit `json:"lists"`
	Unlocks  map[string]time.Time      `json:"unlocks,omitempty"`
	Settings *models.Settings          `json:"settings,omitempty"`
}

// JSONStore keeps everything in a single JSON file, rewritten on each save.
type JSONStore struct {
	path string
	doc  *document
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if _, err := os.Stat(s.path); err == nil {
		return s.Load()
	}

	s.doc = newDocument()
	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNotInitialized
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	doc := newDocument()
	if err := json.Unmarshal(data, doc); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}
	if doc.Version > jsonStoreVersion {
		return fmt.Errorf("storage file version (%d) is newer than supported version (%d) - please upgrade the application", doc.Version, jsonStoreVersion)
	}
	if doc.Lists == nil {
		doc.Lists = make(map[string][]models.Habit)
	}
	if doc.Unlocks == nil {
		doc.Unlocks = make(map[string]time.Time)
	}
	s.doc = doc
	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) LoadHabits(key string) ([]models.Habit, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	list, ok := s.doc.Lists[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]models.Habit, len(list))
	for i, h := range list {
		out[i] = h.Clone()
	}
	return out, nil
}

func (s *JSONStore) SaveHabits(key string, habits []models.Habit) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	list := make([]models.Habit, len(habits))
	for i, h := range habits {
		list[i] = h.Clone()
	}
	s.doc.Lists[key] = list
	return s.save()
}

func (s *JSONStore) LoadUnlocks() (map[string]time.Time, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make(map[string]time.Time, len(s.doc.Unlocks))
	for id, at := range s.doc.Unlocks {
		out[id] = at
	}
	return out, nil
}

func (s *JSONStore) SaveUnlocks(unlocks map[string]time.Time) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Unlocks = make(map[string]time.Time, len(unlocks))
	for id, at := range unlocks {
		s.doc.Unlocks[id] = at
	}
	return s.save()
}

func (s *JSONStore) GetSettings() (models.Settings, error) {
	if err := s.ensureLoaded(); err != nil {
		return models.Settings{}, err
	}
	if s.doc.Settings == nil {
		return models.DefaultSettings(), nil
	}
	return *s.doc.Settings, nil
}

func (s *JSONStore) SaveSettings(settings models.Settings) error {
	if err := s.ensureLoaded(); err != nil {
		return err
	}
	s.doc.Settings = &settings
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}

func (s *JSONStore) ensureLoaded() error {
	if s.doc != nil {
		return nil
	}
	return s.Load()
}

// save writes to a temp file and renames it over the store so a crash never
// leaves a truncated file behind.
func (s *JSONStore) save() error {
	data, err := json.MarshalIndent(s.doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal storage: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("failed to replace storage: %w", err)
	}
	return nil
}

func newDocument() *document {
	return &document{
		Version: jsonStoreVersion,
		Lists:   make(map[string][]models.Habit),
		Unlocks: make(map[string]time.Time),
	}
}
