package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/accounting-time/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "accounting-time.db", cfg.Database.Path)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Empty(t, cfg.Seed.Path)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
}

func TestLoad_FileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
server:
  host: 127.0.0.1
  port: 9000
  shutdown_timeout: 5s
database:
  path: /var/lib/accounting-time/data.db
seed:
  path: /etc/accounting-time/seed.yaml
log:
  level: debug
`), 0o600))

	t.Setenv("ACCOUNTING_TIME_LOG_LEVEL", "warn")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9000", cfg.Server.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "/var/lib/accounting-time/data.db", cfg.Database.Path)
	assert.Equal(t, "/etc/accounting-time/seed.yaml", cfg.Seed.Path)
	assert.Equal(t, "warn", cfg.Log.Level, "environment overrides the file")
}

func TestLoad_Rejects(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	t.Setenv("ACCOUNTING_TIME_SERVER_PORT", "70000")
	_, err = config.Load("")
	assert.ErrorContains(t, err, "server.port")
}
