package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adibhanna/startracker/internal/logger"
	"github.com/adibhanna/startracker/internal/models"
)

const (
	HabitsKey  = "habit-tracker-habits"
	EntriesKey = "habit-tracker-entries"
	ConfigKey  = "habit-tracker-config"
)

const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
)

type Storage struct {
	dataDir string
	backend Backend
}

// Open creates the data directory and the requested backend inside it.
func Open(dataDir, kind string) (*Storage, error) {
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		dataDir = filepath.Join(homeDir, ".startracker")
	}

	var (
		backend Backend
		err     error
	)
	switch kind {
	case "", BackendJSON:
		backend, err = NewFileBackend(dataDir)
	case BackendSQLite:
		backend, err = NewSQLiteBackend(filepath.Join(dataDir, "startracker.db"))
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug("Storage opened", "dir", dataDir, "backend", kind)
	return &Storage{dataDir: dataDir, backend: backend}, nil
}

func New(backend Backend) *Storage {
	return &Storage{backend: backend}
}

func (s *Storage) DataDir() string {
	return s.dataDir
}

func (s *Storage) Close() error {
	return s.backend.Close()
}

// GetHabits returns the stored habits. A missing or unreadable blob yields an
// empty collection.
func (s *Storage) GetHabits() []models.Habit {
	return loadCollection[models.Habit](s.backend, HabitsKey)
}

func (s *Storage) SaveHabits(habits []models.Habit) error {
	return s.save(HabitsKey, habits)
}

// GetEntries returns the stored entries. A missing or unreadable blob yields
// an empty collection.
func (s *Storage) GetEntries() []models.Entry {
	return loadCollection[models.Entry](s.backend, EntriesKey)
}

func (s *Storage) SaveEntries(entries []models.Entry) error {
	return s.save(EntriesKey, entries)
}

func (s *Storage) GetConfig() (models.Config, error) {
	data, ok, err := s.backend.Get(ConfigKey)
	if err != nil {
		return models.Config{}, err
	}
	if !ok {
		config := models.DefaultConfig()
		if err := s.SaveConfig(config); err != nil {
			return config, err
		}
		return config, nil
	}

	var config models.Config
	if err := json.Unmarshal(data, &config); err != nil {
		return models.Config{}, err
	}

	return config.Normalize(), nil
}

func (s *Storage) SaveConfig(config models.Config) error {
	return s.save(ConfigKey, config)
}

func (s *Storage) ResetAllData() error {
	for _, key := range []string{HabitsKey, EntriesKey, ConfigKey} {
		if err := s.backend.Delete(key); err != nil {
			return err
		}
	}
	return nil
}

func (s *Storage) IsFirstTime() bool {
	_, ok, err := s.backend.Get(ConfigKey)
	return err == nil && !ok
}

// loadCollection decodes the JSON array stored under key. Missing and
// malformed blobs both yield an empty collection; only the latter warns.
func loadCollection[T any](backend Backend, key string) []T {
	data, ok, err := backend.Get(key)
	if err != nil {
		logger.Warn("Failed to read collection", "key", key, "error", err)
		return []T{}
	}
	if !ok {
		logger.Debug("Using empty collection", "key", key)
		return []T{}
	}

	var items []T
	if err := json.Unmarshal(data, &items); err != nil {
		logger.Warn("Ignoring unreadable collection", "key", key, "error", err)
		return []T{}
	}
	if items == nil {
		return []T{}
	}
	return items
}

func (s *Storage) save(key string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return s.backend.Set(key, data)
}
