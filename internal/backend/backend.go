// Package backend selects and constructs the blob store the persistence
// gateway writes through.
package backend

import (
	"fmt"
	"log/slog"

	"khata/internal/blob"
	"khata/internal/blob/memory"
	"khata/internal/blob/sqlite"
	applog "khata/internal/log"
)

// Type identifies a blob store implementation.
type Type string

const (
	SQLite Type = "sqlite"
	Memory Type = "memory"
)

// IsValid reports whether the backend type is known.
func (t Type) IsValid() bool {
	switch t {
	case SQLite, Memory:
		return true
	default:
		return false
	}
}

// CleanupFunc releases backend resources.
type CleanupFunc func() error

// Config holds what the factory needs to build a store.
type Config struct {
	Type         Type
	SQLiteDBPath string
}

// Open builds the configured blob store and a cleanup function. The
// memory backend is volatile and meant for tests and throwaway runs.
func Open(cfg Config, logger *applog.Logger) (blob.Store, CleanupFunc, error) {
	if logger == nil {
		logger = applog.New(applog.ComponentStorage, applog.Config{Level: slog.LevelInfo})
	}
	if !cfg.Type.IsValid() {
		return nil, nil, fmt.Errorf("invalid backend type: %s", cfg.Type)
	}

	switch cfg.Type {
	case SQLite:
		store, err := sqlite.Open(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("initialize sqlite blob store: %w", err)
		}
		logger.Info("Initialized sqlite blob store", "path", cfg.SQLiteDBPath)
		return store, store.Close, nil
	default:
		logger.Info("Initialized memory blob store")
		return memory.New(), func() error { return nil }, nil
	}
}
