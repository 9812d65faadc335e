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
	t.Setenv("POSTGRES_URL", "postgres://u:p@localhost:5432/crm")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "5000", cfg.ServerPort)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, int64(20<<20), cfg.MaxUploadBytes())
	assert.Equal(t, 12*time.Hour, cfg.SessionTTL())
	assert.Equal(t, 2, cfg.IngestWorkers)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "POSTGRES_URL=postgres://file/crm\nSERVER_PORT=7000\nINGEST_WORKERS=4\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o644))

	t.Setenv("SERVER_PORT", "9090")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "postgres://file/crm", cfg.PostgresURL)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 4, cfg.IngestWorkers)
}

func TestLoad_RequiresPostgres(t *testing.T) {
	t.Setenv("POSTGRES_URL", "")
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POSTGRES_URL")
}

func TestAllowedOrigins(t *testing.T) {
	cfg := &Config{CORSOrigins: "http://a.test, ,http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins())
}
