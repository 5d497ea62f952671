// Package config loads ibuildhw settings from YAML with environment
// overrides.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// Config is the complete ibuildhw configuration.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Build   BuildConfig   `yaml:"build"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// APIConfig points at the catalog service.
type APIConfig struct {
	BaseURL     string `yaml:"base_url"`
	Token       string `yaml:"token,omitempty"`
	Timeout     string `yaml:"timeout"`
	Concurrency int    `yaml:"concurrency"`
}

// CacheConfig controls the local SQLite catalog copy.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
	TTL     string `yaml:"ttl"`
	Offline bool   `yaml:"offline"`
}

// LoggingConfig selects zap level and encoding.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// BuildConfig names the default build sheet.
type BuildConfig struct {
	Sheet string `yaml:"sheet"`
}

// MetricsConfig controls the Prometheus endpoint served by `watch`.
type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:     "http://localhost:8000",
			Timeout:     "10s",
			Concurrency: 4,
		},
		Cache: CacheConfig{
			Enabled: true,
			Path:    defaultCachePath(),
			TTL:     "15m",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Build: BuildConfig{
			Sheet: "build.yaml",
		},
		Metrics: MetricsConfig{
			Addr: ":9090",
		},
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return filepath.Join(".ibuildhw", "catalog.db")
	}
	return filepath.Join(dir, "ibuildhw", "catalog.db")
}

// Load reads path over the defaults. A missing file is not an error.
// Environment overrides apply in both cases.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("failed to parse config: %w", err)
			}
		case !os.IsNotExist(err):
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg.applyEnvOverrides()
	return cfg, nil
}

// Save writes the configuration as YAML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) applyEnvOverrides() {
	if v := os.Getenv("IBUILDHW_API_URL"); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv("IBUILDHW_API_TOKEN"); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv("IBUILDHW_CACHE_PATH"); v != "" {
		c.Cache.Path = v
	}
	if v := os.Getenv("IBUILDHW_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
}

// Validate reports the first problem found, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	u, err := url.Parse(c.API.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: api.base_url %q is not an absolute URL", ErrInvalid, c.API.BaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: api.base_url scheme must be http or https", ErrInvalid)
	}
	if c.API.Concurrency < 0 {
		return fmt.Errorf("%w: api.concurrency must not be negative", ErrInvalid)
	}
	for name, v := range map[string]string{"api.timeout": c.API.Timeout, "cache.ttl": c.Cache.TTL} {
		if v == "" {
			continue
		}
		if d, err := time.ParseDuration(v); err != nil || d < 0 {
			return fmt.Errorf("%w: %s %q is not a valid duration", ErrInvalid, name, v)
		}
	}
	if c.Cache.Enabled && c.Cache.Path == "" {
		return fmt.Errorf("%w: cache.path is required when the cache is enabled", ErrInvalid)
	}
	switch strings.ToLower(c.Logging.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: logging.level %q", ErrInvalid, c.Logging.Level)
	}
	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: logging.format must be json or console", ErrInvalid)
	}
	return nil
}

// GetAPITimeout returns the HTTP timeout for catalog requests.
func (c *Config) GetAPITimeout() time.Duration {
	d, err := time.ParseDuration(c.API.Timeout)
	if err != nil {
		return 10 * time.Second
	}
	return d
}

// GetCacheTTL returns how long cached catalogs stay fresh.
func (c *Config) GetCacheTTL() time.Duration {
	d, err := time.ParseDuration(c.Cache.TTL)
	if err != nil {
		return 15 * time.Minute
	}
	return d
}
