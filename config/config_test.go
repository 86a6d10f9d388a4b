package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, ModeLocal, cfg.Mode)
	assert.Equal(t, StorageFile, cfg.StorageDriver)
	assert.Equal(t, ".cocktail-lab", cfg.DataDir)
	assert.Equal(t, "cocktail-lab.db", cfg.SQLitePath)
	assert.Equal(t, "localhost", cfg.RedisHost)
	assert.Equal(t, "6379", cfg.RedisPort)
}

func TestLoadRemoteMode(t *testing.T) {
	t.Setenv("LAB_MODE", "remote")
	t.Setenv("LAB_API_BASE_URL", "https://api.example.com")
	t.Setenv("LAB_STORAGE", "memory")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeRemote, cfg.Mode)
	assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
}

func TestLoadRemoteModeRequiresBaseURL(t *testing.T) {
	t.Setenv("LAB_MODE", "remote")
	t.Setenv("LAB_API_BASE_URL", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAB_API_BASE_URL")
}

func TestLoadRejectsUnknownEnums(t *testing.T) {
	t.Setenv("LAB_MODE", "hybrid")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAB_MODE")

	t.Setenv("LAB_MODE", "local")
	t.Setenv("LAB_STORAGE", "cassandra")
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAB_STORAGE")
}

func TestLoadRedisConfig(t *testing.T) {
	t.Setenv("LAB_STORAGE", "redis")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "redis.internal", cfg.RedisHost)
	assert.Equal(t, "6380", cfg.RedisPort)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestLoadRejectsNonIntegerRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "two")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REDIS_DB")
}

func TestEnvironmentDetection(t *testing.T) {
	t.Setenv("ENV", "production")
	assert.Equal(t, Production, GetEnvironment())
	assert.True(t, IsProduction())

	t.Setenv("ENV", "test")
	assert.Equal(t, Test, GetEnvironment())
	assert.True(t, IsTest())

	// Anything unrecognized falls back to development.
	t.Setenv("ENV", "staging")
	assert.Equal(t, Development, GetEnvironment())
	assert.True(t, IsDevelopment())
}

func TestLoadSkipsDotEnvInTestEnvironment(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("LAB_MODE=remote\n"), 0o644))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Setenv("ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ModeLocal, cfg.Mode, "a .env file must be ignored under ENV=test")

	// Outside the test environment the same file is honored: remote mode
	// without a base url fails validation.
	t.Setenv("ENV", "development")
	t.Cleanup(func() { os.Unsetenv("LAB_MODE") })
	_, err = Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "LAB_API_BASE_URL")
}
