// Package config holds the application configuration, loaded from the
// environment with development defaults. A .env file is honored when
// present.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Mode selects where state lives: entirely client-side, or delegated to the
// remote recipe service.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// StorageDriver selects the snapshot backing store.
type StorageDriver string

const (
	StorageMemory StorageDriver = "memory"
	StorageFile   StorageDriver = "file"
	StorageSQLite StorageDriver = "sqlite"
	StorageRedis  StorageDriver = "redis"
)

// Config holds all configuration for the application.
type Config struct {
	Mode          Mode
	APIBaseURL    string
	StorageDriver StorageDriver

	// File / SQLite storage
	DataDir    string
	SQLitePath string

	// Redis storage
	RedisHost     string
	RedisPort     string
	RedisPassword string
	RedisDB       int
	RedisURL      string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	// Best effort; the environment wins over the file. Test runs must not
	// pick up a developer's .env.
	if !IsTest() {
		_ = godotenv.Load()
	}

	cfg := &Config{
		Mode:          Mode(getEnv("LAB_MODE", string(ModeLocal))),
		APIBaseURL:    os.Getenv("LAB_API_BASE_URL"),
		StorageDriver: StorageDriver(getEnv("LAB_STORAGE", string(StorageFile))),
		DataDir:       getEnv("LAB_DATA_DIR", ".cocktail-lab"),
		SQLitePath:    getEnv("LAB_SQLITE_PATH", "cocktail-lab.db"),
		RedisHost:     getEnv("REDIS_HOST", "localhost"),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		RedisURL:      os.Getenv("REDIS_URL"),
	}

	if db := os.Getenv("REDIS_DB"); db != "" {
		parsed, err := strconv.Atoi(db)
		if err != nil {
			return nil, ValidationError{Field: "REDIS_DB", Message: "must be an integer"}
		}
		cfg.RedisDB = parsed
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
