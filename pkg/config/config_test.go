package config

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridboard/pkg/cache"
	errs "github.com/matzehuels/gridboard/pkg/errors"
	"github.com/matzehuels/gridboard/pkg/grid"
	"github.com/matzehuels/gridboard/pkg/service"
	"github.com/matzehuels/gridboard/pkg/session"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default() does not validate: %v", err)
	}
	if cfg.Addr != DefaultAddr || cfg.Store != StoreMemory || cfg.BoardSize != 9 {
		t.Errorf("Default() = %+v", cfg)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"gridboard.toml", `
addr = ":9090"
store = "file"
session_dir = "/tmp/sessions"
session_ttl = "2h"
cache = "none"
cache_prefix = "staging:"
board_size = 12
log_level = "debug"
`},
		{"gridboard.yaml", `
addr: ":9090"
store: file
session_dir: /tmp/sessions
session_ttl: 2h
cache: none
cache_prefix: "staging:"
board_size: 12
log_level: debug
`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load(writeFile(t, tt.name, tt.content))
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			want := Default()
			want.Addr = ":9090"
			want.Store = StoreFile
			want.SessionDir = "/tmp/sessions"
			want.SessionTTL = 2 * time.Hour
			want.Cache = CacheNone
			want.CachePrefix = "staging:"
			want.BoardSize = 12
			want.LogLevel = "debug"
			if cfg != want {
				t.Errorf("Load() = %+v, want %+v", cfg, want)
			}
			if level, _ := cfg.Level(); level != log.DebugLevel {
				t.Errorf("Level() = %v, want debug", level)
			}
		})
	}
}

func TestLoadKeepsDefaults(t *testing.T) {
	cfg, err := Load(writeFile(t, "partial.yml", "addr: \":1234\"\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Store != StoreMemory || cfg.SessionTTL != session.DefaultTTL {
		t.Errorf("unset fields should keep defaults, got %+v", cfg)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, file, content string
		code                errs.Code
	}{
		{"unknown toml key", "a.toml", "adress = \":1\"\n", errs.ErrCodeInvalidFormat},
		{"unknown yaml key", "a.yaml", "adress: \":1\"\n", errs.ErrCodeInvalidFormat},
		{"bad extension", "a.ini", "addr=:1\n", errs.ErrCodeInvalidFormat},
		{"bad store", "a.toml", "store = \"mongo\"\n", errs.ErrCodeInvalidInput},
		{"bad cache", "a.yaml", "cache: disk\n", errs.ErrCodeInvalidInput},
		{"board too large", "a.toml", "board_size = 5000\n", errs.ErrCodeInvalidInput},
		{"bad level", "a.yaml", "log_level: loud\n", errs.ErrCodeInvalidInput},
		{"bad ttl", "a.toml", "session_ttl = \"-1m\"\n", errs.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.file, tt.content))
			if !errs.Is(err, tt.code) {
				t.Errorf("Load() = %v, want %s", err, tt.code)
			}
		})
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("Load(missing) should fail")
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	cfg := Default()
	cfg.Store = StoreFile
	cfg.SessionDir = filepath.Join(dir, "sessions")
	cfg.Cache = CacheFile
	cfg.CacheDir = filepath.Join(dir, "cache")
	cfg.BoardSize = 4
	cfg.SessionTTL = time.Minute
	cfg.CachePrefix = "staging:"

	store, err := cfg.OpenStore(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if fs, ok := store.(*session.FileStore); !ok || fs.Path() != cfg.SessionDir {
		t.Errorf("OpenStore() = %T, want file store at %s", store, cfg.SessionDir)
	}

	c, err := cfg.OpenCache(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := c.Set(ctx, "placement:x", []byte("1"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(cfg.CacheDir); err != nil {
		t.Errorf("file cache dir not created: %v", err)
	}

	svc, err := cfg.Service(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer svc.Close()
	if svc.BoardSize != 4 || svc.TTL != time.Minute {
		t.Errorf("Service() BoardSize=%d TTL=%s", svc.BoardSize, svc.TTL)
	}
	if key := svc.Keyer.PlacementKey([]grid.Size{{Width: 1, Height: 1}}, 8); !strings.HasPrefix(key, "staging:placement:") {
		t.Errorf("PlacementKey() = %q, want staging: prefix", key)
	}
	v, err := svc.Create(ctx, service.CreateRequest{})
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Components) != 4 {
		t.Errorf("created %d components, want board_size 4", len(v.Components))
	}
}

func TestOpenNullCache(t *testing.T) {
	cfg := Default()
	cfg.Cache = CacheNone
	c, err := cfg.OpenCache(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.(*cache.NullCache); !ok {
		t.Errorf("OpenCache() = %T, want *cache.NullCache", c)
	}
}
