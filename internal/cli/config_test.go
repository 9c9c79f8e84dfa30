package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/aweissman/depviz/pkg/cache"
	"github.com/aweissman/depviz/pkg/errors"
	"github.com/aweissman/depviz/pkg/rosette"
)

func TestConfigDecode(t *testing.T) {
	raw := `
api_url = "https://alt.rosette.example/rest/v1/"
key = "secret"
language = "spa"
listen = ":9090"

[cache]
backend = "file"
ttl = "48h"
dir = "/tmp/depviz-cache"
`
	var cfg config
	if _, err := toml.Decode(raw, &cfg); err != nil {
		t.Fatalf("decode error: %v", err)
	}

	if cfg.APIURL != "https://alt.rosette.example/rest/v1/" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Language != "spa" {
		t.Errorf("Language = %q", cfg.Language)
	}
	if cfg.Cache.TTL.Duration != 48*time.Hour {
		t.Errorf("TTL = %v, want 48h", cfg.Cache.TTL.Duration)
	}
	if cfg.Cache.Dir != "/tmp/depviz-cache" {
		t.Errorf("Dir = %q", cfg.Cache.Dir)
	}
}

func TestDurationUnmarshalInvalid(t *testing.T) {
	var d duration
	if err := d.UnmarshalText([]byte("not-a-duration")); err == nil {
		t.Error("invalid duration should fail to decode")
	}
}

func TestCacheTTLDefault(t *testing.T) {
	cfg := &config{}
	if got := cfg.cacheTTL(); got != rosette.DefaultCacheTTL {
		t.Errorf("default TTL = %v, want %v", got, rosette.DefaultCacheTTL)
	}

	cfg.Cache.TTL.Duration = time.Hour
	if got := cfg.cacheTTL(); got != time.Hour {
		t.Errorf("configured TTL = %v, want 1h", got)
	}
}

func TestResolveKeyPrecedence(t *testing.T) {
	t.Setenv(keyEnvVar, "env-key")
	cfg := &config{Key: "config-key"}

	// Flag wins over everything
	key, err := resolveKey("flag-key", cfg)
	if err != nil || key != "flag-key" {
		t.Errorf("flag key: got %q, %v", key, err)
	}

	// Environment wins over config
	key, err = resolveKey("", cfg)
	if err != nil || key != "env-key" {
		t.Errorf("env key: got %q, %v", key, err)
	}

	// Config is the last non-interactive source
	t.Setenv(keyEnvVar, "")
	key, err = resolveKey("", cfg)
	if err != nil || key != "config-key" {
		t.Errorf("config key: got %q, %v", key, err)
	}
}

func TestNewCacheBackend(t *testing.T) {
	dir := t.TempDir()

	// noCache always wins
	c, err := newCacheBackend(&config{Cache: cacheConfig{Backend: cacheBackendFile, Dir: dir}}, true)
	if err != nil {
		t.Fatalf("noCache backend: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("noCache should yield NullCache, got %T", c)
	}

	// "none" backend
	c, err = newCacheBackend(&config{Cache: cacheConfig{Backend: cacheBackendNone}}, false)
	if err != nil {
		t.Fatalf("none backend: %v", err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("none should yield NullCache, got %T", c)
	}

	// file backend with explicit dir
	c, err = newCacheBackend(&config{Cache: cacheConfig{Backend: cacheBackendFile, Dir: dir}}, false)
	if err != nil {
		t.Fatalf("file backend: %v", err)
	}
	fc, ok := c.(*cache.FileCache)
	if !ok {
		t.Fatalf("file should yield FileCache, got %T", c)
	}
	if fc.Dir() != dir {
		t.Errorf("cache dir = %q, want %q", fc.Dir(), dir)
	}

	// redis backend requires a URL
	if _, err := newCacheBackend(&config{Cache: cacheConfig{Backend: cacheBackendRedis}}, false); err == nil {
		t.Error("redis without redis_url should fail")
	}

	// unknown backend is rejected
	_, err = newCacheBackend(&config{Cache: cacheConfig{Backend: "memcached"}}, false)
	if errors.GetCode(err) != errors.ErrCodeInvalidInput {
		t.Errorf("unknown backend: got %v", err)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("missing config file should not error: %v", err)
	}
	if cfg.Key != "" || cfg.Cache.Backend != "" {
		t.Errorf("missing file should yield zero config: %+v", cfg)
	}
}

func TestLoadConfigFromFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", home)

	dir := filepath.Join(home, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatal(err)
	}
	content := "language = \"deu\"\n\n[cache]\nbackend = \"none\"\n"
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig error: %v", err)
	}
	if cfg.Language != "deu" {
		t.Errorf("Language = %q, want deu", cfg.Language)
	}
	if cfg.Cache.Backend != cacheBackendNone {
		t.Errorf("Backend = %q, want none", cfg.Cache.Backend)
	}
}
