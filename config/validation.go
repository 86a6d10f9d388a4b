package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks enum values and mode/driver coherence.
func (cfg *Config) Validate() error {
	var errs []string

	switch cfg.Mode {
	case ModeLocal, ModeRemote:
	default:
		errs = append(errs, fmt.Sprintf("LAB_MODE: unknown mode %q", cfg.Mode))
	}

	switch cfg.StorageDriver {
	case StorageMemory, StorageFile, StorageSQLite, StorageRedis:
	default:
		errs = append(errs, fmt.Sprintf("LAB_STORAGE: unknown driver %q", cfg.StorageDriver))
	}

	if cfg.Mode == ModeRemote && cfg.APIBaseURL == "" {
		errs = append(errs, "LAB_API_BASE_URL: required in remote mode")
	}

	switch cfg.StorageDriver {
	case StorageFile:
		if cfg.DataDir == "" {
			errs = append(errs, "LAB_DATA_DIR: required for file storage")
		}
	case StorageSQLite:
		if cfg.SQLitePath == "" {
			errs = append(errs, "LAB_SQLITE_PATH: required for sqlite storage")
		}
	case StorageRedis:
		if cfg.RedisURL == "" && (cfg.RedisHost == "" || cfg.RedisPort == "") {
			errs = append(errs, "REDIS_HOST/REDIS_PORT: required for redis storage when REDIS_URL is unset")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errs, "\n"))
	}
	return nil
}
