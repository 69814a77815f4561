package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "DB_HOST", "HEATMAP_CACHE_SIZE", "HEATMAP_CACHE_TTL", "RATE_LIMIT", "REDIS_DB"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 500, cfg.Heatmap.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.Heatmap.CacheTTL)
	assert.Equal(t, 100, cfg.RateLimit)
	assert.Equal(t, 0, cfg.Redis.DB)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HEATMAP_CACHE_SIZE", "42")
	t.Setenv("HEATMAP_CACHE_TTL", "90s")
	t.Setenv("HEATMAP_PAGE_SIZE", "5")
	t.Setenv("REDIS_DB", "3")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 42, cfg.Heatmap.CacheSize)
	assert.Equal(t, 90*time.Second, cfg.Heatmap.CacheTTL)
	assert.Equal(t, 5, cfg.Heatmap.PageSize)
	assert.Equal(t, 3, cfg.Redis.DB)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("HEATMAP_CACHE_SIZE", "lots")
	t.Setenv("HEATMAP_CACHE_TTL", "-5m")
	t.Setenv("RATE_LIMIT", "-1")

	cfg := Load()

	assert.Equal(t, 500, cfg.Heatmap.CacheSize)
	assert.Equal(t, 10*time.Minute, cfg.Heatmap.CacheTTL)
	assert.Equal(t, 100, cfg.RateLimit)
}

func TestLoad_EnvFile(t *testing.T) {
	t.Setenv("DB_NAME", "placeholder")
	require.NoError(t, os.Unsetenv("DB_NAME"))
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\n"), 0o600))

	cfg := Load(path)
	assert.Equal(t, "from_file", cfg.Database.Name)

	// godotenv does not override variables that are already set, and t.Setenv
	// restores DB_NAME afterwards.
	t.Setenv("DB_NAME", "from_env")
	assert.Equal(t, "from_env", Load(path).Database.Name)
}

func TestDatabaseConfig_DSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n"}
	assert.Equal(t, "postgres://u:p@db:5432/n?sslmode=disable", c.DSN())
}
