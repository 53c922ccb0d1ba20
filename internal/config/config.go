package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"khata/internal/core"
)

type Config struct {
	// HTTP server
	Port string

	// Storage backend selection: "memory" or "sqlite".
	DataBackend string

	// SQLite blob store
	SQLiteDBPath string

	// Blob key holding the serialized ledger
	BlobKey string

	// Display currency (ISO 4217 code)
	CurrencyCode string
}

func Load() *Config {
	return &Config{
		Port:         getEnv("PORT", "8081"),
		DataBackend:  getEnv("DATA_BACKEND", "sqlite"),
		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/khata.db"),
		BlobKey:      getEnv("BLOB_KEY", "khata/transactions"),
		CurrencyCode: getEnv("CURRENCY_CODE", "INR"),
	}
}

// Validate checks the configuration, collecting every problem so the
// operator sees them all at once.
func (c *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errors = append(errors, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	validBackends := []string{"memory", "sqlite"}
	isValidBackend := false
	for _, backend := range validBackends {
		if c.DataBackend == backend {
			isValidBackend = true
			break
		}
	}
	if !isValidBackend {
		errors = append(errors, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
	}

	if c.DataBackend == "sqlite" {
		if c.SQLiteDBPath == "" {
			errors = append(errors, "SQLite database path cannot be empty when using sqlite backend")
		} else {
			dir := filepath.Dir(c.SQLiteDBPath)
			if dir != "." && dir != "" {
				if _, err := os.Stat(dir); os.IsNotExist(err) {
					if err := os.MkdirAll(dir, 0755); err != nil {
						errors = append(errors, fmt.Sprintf("cannot create SQLite database directory '%s': %v", dir, err))
					}
				}
			}
		}
	}

	if strings.TrimSpace(c.BlobKey) == "" {
		errors = append(errors, "blob key cannot be empty")
	}

	if !core.KnownCurrency(c.CurrencyCode) {
		errors = append(errors, fmt.Sprintf("unknown currency code '%s'", c.CurrencyCode))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
