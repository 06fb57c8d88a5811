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
	cfg, err := Load(New(), "")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8001/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.API.Timeout)
	assert.Equal(t, "subscription:", cfg.Redis.Prefix)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "formbind.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://rss.example.com/api/v1
  timeout: 5s
redis:
  addr: localhost:6379
  db: 2
log:
  level: debug
`), 0o644))

	t.Setenv("FORMBIND_LOG_FORMAT", "json")
	t.Setenv("FORMBIND_REDIS_DB", "3")

	cfg, err := Load(New(), path)
	require.NoError(t, err)

	assert.Equal(t, "https://rss.example.com/api/v1", cfg.API.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.API.Timeout)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(New(), filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	require.Error(t, cfg.Validate())

	cfg.API.BaseURL = "http://x"
	cfg.API.Timeout = -time.Second
	require.Error(t, cfg.Validate())
}
