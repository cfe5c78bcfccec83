package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/waterway-crossing/internal/config"
)

func writeEnv(t *testing.T, content string) {
	t.Helper()

	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0o644)
	require.NoError(t, err)
	t.Chdir(dir)
}

func TestLoad_AppliesDefaults(t *testing.T) {
	writeEnv(t, `API_HOST=0.0.0.0
API_PORT=8080
DB_HOST=localhost
DB_PORT=5432
DB_USER=postgres
DB_NAME=waterways
`)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:8080", cfg.GetServerAddr())
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 1000, cfg.Ingest.BatchSize)
	assert.Equal(t, 20<<20, cfg.Upload.MaxTrackBytes)
	assert.False(t, cfg.Redis.Enabled)
}

func TestLoad_RejectsIncompleteDatabaseConfig(t *testing.T) {
	writeEnv(t, `API_HOST=0.0.0.0
API_PORT=8080
DB_PORT=5432
DB_USER=postgres
DB_NAME=waterways
`)
	t.Setenv("DB_HOST", "")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}
