// Package cli provides common initialization shared by cmd/khata and
// cmd/khata-report: logging, env loading, config validation and backend
// construction.
package cli

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"

	"khata/internal/backend"
	"khata/internal/blob"
	"khata/internal/config"
	applog "khata/internal/log"
)

// SetupLogger initializes structured logging and sets it as the default.
func SetupLogger() *applog.Logger {
	logger := applog.New(applog.ComponentApp, applog.Config{Level: slog.LevelInfo})
	applog.SetDefault(logger)
	return logger
}

// LoadEnvFile loads the .env file for local development. Errors are
// ignored: the file is optional in production.
func LoadEnvFile() {
	_ = godotenv.Load()
}

// LoadAndValidateConfig loads configuration and validates it, exiting
// the process on failure.
func LoadAndValidateConfig(logger *applog.Logger) *config.Config {
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	return cfg
}

// OpenBackend builds the configured blob store, exiting on failure.
func OpenBackend(logger *applog.Logger, cfg *config.Config) (blob.Store, backend.CleanupFunc) {
	store, cleanup, err := backend.Open(backend.Config{
		Type:         backend.Type(cfg.DataBackend),
		SQLiteDBPath: cfg.SQLiteDBPath,
	}, logger.WithComponent(applog.ComponentStorage))
	if err != nil {
		logger.Error("Failed to initialize blob store", applog.FieldError, err, applog.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	return store, cleanup
}
