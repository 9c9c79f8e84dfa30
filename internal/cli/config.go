package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/aweissman/depviz/pkg/cache"
	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/rosette"
)

// keyEnvVar is the environment variable holding the Rosette API key.
const keyEnvVar = "ROSETTE_USER_KEY"

// Cache backend names accepted in the config file.
const (
	cacheBackendFile  = "file"
	cacheBackendRedis = "redis"
	cacheBackendNone  = "none"
)

// duration wraps time.Duration so TOML values like "24h" decode.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}

// cacheConfig selects and configures the document cache backend.
type cacheConfig struct {
	Backend  string   `toml:"backend"`   // "file" (default), "redis", or "none"
	TTL      duration `toml:"ttl"`       // entry lifetime, e.g. "24h"
	Dir      string   `toml:"dir"`       // file backend directory override
	RedisURL string   `toml:"redis_url"` // redis backend connection URL
}

// config holds settings from ~/.config/depviz/config.toml. Flags and
// environment variables take precedence over file values.
type config struct {
	APIURL   string      `toml:"api_url"`
	Key      string      `toml:"key"`
	Language string      `toml:"language"`
	Endpoint string      `toml:"endpoint"`
	Listen   string      `toml:"listen"`
	Cache    cacheConfig `toml:"cache"`
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using the XDG convention
// (~/.cache/depviz/ by default).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// loadConfig reads the TOML config file, returning zero-valued config
// when no file exists. A .env file in the working directory is loaded
// first so ROSETTE_USER_KEY can live there during development.
func loadConfig() (*config, error) {
	_ = godotenv.Load()

	var cfg config
	path, err := configPath()
	if err != nil {
		return &cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse %s", path)
	}
	return &cfg, nil
}

// resolveKey returns the API key, trying the flag, the environment, the
// config file, and finally an interactive prompt. It fails with
// MISSING_CREDENTIAL before any fetch when no key can be obtained.
func resolveKey(flagKey string, cfg *config) (string, error) {
	if flagKey != "" {
		return flagKey, nil
	}
	if key := os.Getenv(keyEnvVar); key != "" {
		return key, nil
	}
	if cfg.Key != "" {
		return cfg.Key, nil
	}
	return promptForKey()
}

// newCacheBackend constructs the configured cache backend. Failures to
// set up the file cache degrade to no caching rather than aborting; an
// unusable cache should not block a render.
func newCacheBackend(cfg *config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}

	switch cfg.Cache.Backend {
	case cacheBackendNone:
		return cache.NewNullCache(), nil
	case cacheBackendRedis:
		if cfg.Cache.RedisURL == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "cache.redis_url is required for the redis backend")
		}
		return cache.NewRedisCache(cfg.Cache.RedisURL, appName+":")
	case cacheBackendFile, "":
		dir := cfg.Cache.Dir
		if dir == "" {
			var err error
			if dir, err = cacheDir(); err != nil {
				return cache.NewNullCache(), nil
			}
		}
		backend, err := cache.NewFileCache(dir)
		if err != nil {
			return cache.NewNullCache(), nil
		}
		return backend, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"unknown cache backend: %s (must be 'file', 'redis', or 'none')", cfg.Cache.Backend)
	}
}

// cacheTTL returns the configured cache TTL, defaulting to the rosette
// client default.
func (c *config) cacheTTL() time.Duration {
	if c.Cache.TTL.Duration > 0 {
		return c.Cache.TTL.Duration
	}
	return rosette.DefaultCacheTTL
}
