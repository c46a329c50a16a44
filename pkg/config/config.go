// Package config loads the gridboard server configuration.
//
// A configuration file is TOML or YAML, chosen by extension. Fields that
// the file leaves out keep their [Default] values, and command-line flags
// override both.
//
//	# gridboard.toml
//	addr         = ":8080"
//	store        = "redis"
//	redis_addr   = "localhost:6379"
//	session_ttl  = "2h"
//	cache        = "redis"
//	cache_prefix = "gridboard:staging:"
//	board_size   = 12
//	log_level    = "debug"
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/gridboard/pkg/board"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/service"
	"github.com/matzehuels/gridboard/pkg/session"
)

// Session store backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// Cache backends.
const (
	CacheNone   = "none"
	CacheMemory = "memory"
	CacheFile   = "file"
	CacheRedis  = "redis"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8080"

// Config holds the server settings.
type Config struct {
	Addr string `toml:"addr" yaml:"addr"`

	// Store selects the session backend: memory, file or redis.
	Store      string        `toml:"store" yaml:"store"`
	SessionDir string        `toml:"session_dir" yaml:"session_dir"`
	SessionTTL time.Duration `toml:"session_ttl" yaml:"session_ttl"`

	// Cache selects the placement cache: none, memory, file or redis.
	Cache    string `toml:"cache" yaml:"cache"`
	CacheDir string `toml:"cache_dir" yaml:"cache_dir"`

	// CachePrefix namespaces cache keys, so several servers can share one
	// Redis cache.
	CachePrefix string `toml:"cache_prefix" yaml:"cache_prefix"`

	RedisAddr     string `toml:"redis_addr" yaml:"redis_addr"`
	RedisPassword string `toml:"redis_password" yaml:"redis_password"`
	RedisDB       int    `toml:"redis_db" yaml:"redis_db"`

	BoardSize int    `toml:"board_size" yaml:"board_size"`
	LogLevel  string `toml:"log_level" yaml:"log_level"`
}

// Default returns the configuration used when no file is given: an
// in-memory store and cache on :8080.
func Default() Config {
	return Config{
		Addr:       DefaultAddr,
		Store:      StoreMemory,
		SessionTTL: session.DefaultTTL,
		Cache:      CacheMemory,
		RedisAddr:  "localhost:6379",
		BoardSize:  board.DefaultSize,
		LogLevel:   "info",
	}
}

// Load reads a TOML (.toml) or YAML (.yaml, .yml) file on top of [Default].
// Unknown keys are rejected.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		md, err := toml.Decode(string(data), &cfg)
		if err != nil {
			return cfg, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", path)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return cfg, errs.New(errs.ErrCodeInvalidFormat, "%s: unknown key %q", path, undecoded[0].String())
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&cfg); err != nil {
			return cfg, errs.Wrap(errs.ErrCodeInvalidFormat, err, "parse %s", path)
		}
	default:
		return cfg, errs.New(errs.ErrCodeInvalidFormat, "unsupported config file %q (want .toml, .yaml or .yml)", path)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks backend names and numeric ranges.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown store %q (want memory, file or redis)", c.Store)
	}
	switch c.Cache {
	case CacheNone, CacheMemory, CacheFile, CacheRedis:
	default:
		return errs.New(errs.ErrCodeInvalidInput, "unknown cache %q (want none, memory, file or redis)", c.Cache)
	}
	if c.SessionTTL <= 0 {
		return errs.New(errs.ErrCodeInvalidInput, "session_ttl must be positive, got %s", c.SessionTTL)
	}
	if c.BoardSize < 0 || c.BoardSize > service.MaxComponents {
		return errs.New(errs.ErrCodeInvalidInput, "board_size must be between 0 and %d, got %d", service.MaxComponents, c.BoardSize)
	}
	if c.RedisDB < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "redis_db must not be negative")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level parses LogLevel. An empty level is info.
func (c *Config) Level() (log.Level, error) {
	if c.LogLevel == "" {
		return log.InfoLevel, nil
	}
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel, errs.Wrap(errs.ErrCodeInvalidInput, err, "log_level")
	}
	return level, nil
}
