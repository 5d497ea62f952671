package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, 15*time.Minute, cfg.GetCacheTTL())
	assert.True(t, cfg.Cache.Enabled)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig().API, cfg.API)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ibuildhw.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
api:
  base_url: https://parts.example.com
  timeout: 3s
cache:
  ttl: 1h
logging:
  level: debug
`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://parts.example.com", cfg.API.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, time.Hour, cfg.GetCacheTTL())
	assert.Equal(t, "debug", cfg.Logging.Level)
	// Untouched sections keep their defaults.
	assert.Equal(t, 4, cfg.API.Concurrency)
	assert.Equal(t, "console", cfg.Logging.Format)
}

func TestLoad_ParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [unterminated"), 0644))
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("IBUILDHW_API_URL", "http://catalog:9000")
	t.Setenv("IBUILDHW_API_TOKEN", "tok")
	t.Setenv("IBUILDHW_CACHE_PATH", "/tmp/c.db")
	t.Setenv("IBUILDHW_LOG_LEVEL", "warn")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "http://catalog:9000", cfg.API.BaseURL)
	assert.Equal(t, "tok", cfg.API.Token)
	assert.Equal(t, "/tmp/c.db", cfg.Cache.Path)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"relative url", func(c *Config) { c.API.BaseURL = "localhost:8000" }},
		{"ftp url", func(c *Config) { c.API.BaseURL = "ftp://example.com" }},
		{"negative concurrency", func(c *Config) { c.API.Concurrency = -1 }},
		{"bad timeout", func(c *Config) { c.API.Timeout = "soon" }},
		{"negative ttl", func(c *Config) { c.Cache.TTL = "-1m" }},
		{"cache without path", func(c *Config) { c.Cache.Path = "" }},
		{"unknown level", func(c *Config) { c.Logging.Level = "verbose" }},
		{"unknown format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalid)
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "ibuildhw.yaml")
	cfg := DefaultConfig()
	cfg.API.BaseURL = "https://saved.example.com"
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "https://saved.example.com", loaded.API.BaseURL)
}

func TestDurationGettersFallBack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.API.Timeout = "garbage"
	cfg.Cache.TTL = ""
	assert.Equal(t, 10*time.Second, cfg.GetAPITimeout())
	assert.Equal(t, 15*time.Minute, cfg.GetCacheTTL())
}
