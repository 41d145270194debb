// Package config loads coursefinder settings.
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults ([Default])
//  2. A TOML file, by default $XDG_CONFIG_HOME/coursefinder/config.toml
//  3. Environment variables ([EnvBaseURL], [EnvRedisAddr])
//
// Command-line flags are applied on top by the CLI.
//
// # Example
//
//	[api]
//	base_url = "https://api.umd.io/v1"
//
//	[http]
//	timeout = "30s"
//	retries = 0
//
//	[cache]
//	backend = "redis"
//	response_ttl = "1h"
//
//	[cache.redis]
//	addr = "localhost:6379"
//
//	[search]
//	workers = 4
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/coursefinder/pkg/cache"
	"github.com/matzehuels/coursefinder/pkg/errors"
	"github.com/matzehuels/coursefinder/pkg/integrations"
	"github.com/matzehuels/coursefinder/pkg/integrations/umdio"
)

// AppName names the config and cache directories.
const AppName = "coursefinder"

// Environment overrides.
const (
	EnvBaseURL   = "COURSEFINDER_BASE_URL"
	EnvRedisAddr = "COURSEFINDER_REDIS_ADDR"
)

// Cache backends.
const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendNone   = "none"
)

// Config is the complete configuration.
type Config struct {
	API    APIConfig    `toml:"api"`
	HTTP   HTTPConfig   `toml:"http"`
	Cache  CacheConfig  `toml:"cache"`
	Search SearchConfig `toml:"search"`
	Server ServerConfig `toml:"server"`
}

// APIConfig locates the catalog.
type APIConfig struct {
	BaseURL string `toml:"base_url"`
}

// HTTPConfig tunes catalog requests.
type HTTPConfig struct {
	Timeout Duration `toml:"timeout"`
	Retries int      `toml:"retries"`
}

// CacheConfig selects and tunes the response cache.
type CacheConfig struct {
	Backend     string      `toml:"backend"`
	Dir         string      `toml:"dir"` // file backend; default $XDG_CACHE_HOME/coursefinder
	ResponseTTL Duration    `toml:"response_ttl"`
	SemesterTTL Duration    `toml:"semester_ttl"`
	Redis       RedisConfig `toml:"redis"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// SearchConfig holds search defaults.
type SearchConfig struct {
	Workers         int    `toml:"workers"`
	SemesterFilter  bool   `toml:"semester_filter"`
	ReuseProfessors bool   `toml:"reuse_professors"`
	DeptFallback    bool   `toml:"dept_fallback"`
	Format          string `toml:"format"`
}

// ServerConfig configures the web dashboard.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// Duration is a time.Duration written as a string such as "30s" or "1h".
type Duration struct {
	time.Duration
}

// UnmarshalText parses a duration string.
func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(strings.TrimSpace(string(text)))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		API:  APIConfig{BaseURL: umdio.DefaultBaseURL},
		HTTP: HTTPConfig{Timeout: Duration{integrations.DefaultTimeout}},
		Cache: CacheConfig{
			Backend:     BackendMemory,
			ResponseTTL: Duration{cache.TTLResponse},
			SemesterTTL: Duration{cache.TTLSemesters},
			Redis:       RedisConfig{Addr: "localhost:6379", Prefix: AppName + ":"},
		},
		Search: SearchConfig{
			Workers:        4,
			SemesterFilter: true,
			Format:         "table",
		},
		Server: ServerConfig{Addr: "127.0.0.1:8080"},
	}
}

// Load reads the config file at path over the defaults, then applies
// environment overrides. An empty path reads [DefaultPath] if it exists.
// An explicit path that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err == nil {
			path = p
		}
	}
	if path != "" {
		if err := cfg.readFile(path, explicit); err != nil {
			return Config{}, err
		}
	}

	cfg.ApplyEnv(os.Getenv)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) readFile(path string, mustExist bool) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) && !mustExist {
			return nil
		}
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q in %s", undecoded[0].String(), path)
	}
	return nil
}

// ApplyEnv applies environment overrides read through getenv.
func (c *Config) ApplyEnv(getenv func(string) string) {
	if v := strings.TrimSpace(getenv(EnvBaseURL)); v != "" {
		c.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvRedisAddr)); v != "" {
		c.Cache.Redis.Addr = v
	}
}

// Validate checks the configuration for values no component can use.
func (c Config) Validate() error {
	if err := errors.ValidateURL(c.API.BaseURL); err != nil {
		return err
	}
	switch c.Cache.Backend {
	case BackendMemory, BackendFile, BackendRedis, BackendNone:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", c.Cache.Backend)
	}
	if c.HTTP.Retries < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "http.retries must not be negative")
	}
	if c.HTTP.Timeout.Duration < 0 || c.Cache.ResponseTTL.Duration < 0 || c.Cache.SemesterTTL.Duration < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "durations must not be negative")
	}
	if c.Search.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "search.workers must be at least 1")
	}
	return nil
}

// UmdioOptions returns the catalog client options for this configuration.
// keyer may be nil.
func (c Config) UmdioOptions(keyer cache.Keyer, refresh bool) umdio.Options {
	return umdio.Options{
		BaseURL:     c.API.BaseURL,
		ResponseTTL: c.Cache.ResponseTTL.Duration,
		SemesterTTL: c.Cache.SemesterTTL.Duration,
		HTTP: integrations.Options{
			Timeout: c.HTTP.Timeout.Duration,
			Retries: c.HTTP.Retries,
			Keyer:   keyer,
			Refresh: refresh,
		},
	}
}

// =============================================================================
// Paths
// =============================================================================

// DefaultPath returns the config file location using the XDG standard
// (~/.config/coursefinder/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, AppName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", AppName, "config.toml"), nil
}

// CacheDir returns the file cache directory: the configured one, or the XDG
// default (~/.cache/coursefinder).
func (c Config) CacheDir() (string, error) {
	if c.Cache.Dir != "" {
		return c.Cache.Dir, nil
	}
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, AppName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", AppName), nil
}
