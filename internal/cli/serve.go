package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/config"
	"github.com/matzehuels/gridboard/pkg/server"
)

// serveCommand starts the HTTP API. Flags override the config file.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		configPath string
		timeout    time.Duration
	)
	cfg := config.Default()

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the board HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := loadServeConfig(cmd, configPath, cfg)
			if err != nil {
				return err
			}
			level, _ := loaded.Level()
			if !cmd.Flags().Changed("verbose") {
				c.SetLogLevel(level)
			}

			svc, err := loaded.Service(cmd.Context(), c.Logger)
			if err != nil {
				return err
			}
			defer svc.Close()

			c.Logger.Info("starting server", "addr", loaded.Addr, "store", loaded.Store, "cache", loaded.Cache)
			srv := server.New(svc, c.Logger, server.WithTimeout(timeout))
			return srv.ListenAndServe(cmd.Context(), loaded.Addr)
		},
	}

	f := cmd.Flags()
	f.StringVarP(&configPath, "config", "c", "", "config file (.toml, .yaml)")
	f.DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	f.StringVar(&cfg.Addr, "addr", cfg.Addr, "listen address")
	f.StringVar(&cfg.Store, "store", cfg.Store, "session store: memory, file, redis")
	f.StringVar(&cfg.SessionDir, "session-dir", "", "session directory for the file store")
	f.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "session lifetime")
	f.StringVar(&cfg.Cache, "cache", cfg.Cache, "placement cache: none, memory, file, redis")
	f.StringVar(&cfg.CacheDir, "cache-dir", "", "cache directory for the file cache")
	f.StringVar(&cfg.CachePrefix, "cache-prefix", "", "prefix for cache keys")
	f.StringVar(&cfg.RedisAddr, "redis-addr", cfg.RedisAddr, "redis address")
	f.StringVar(&cfg.RedisPassword, "redis-password", "", "redis password")
	f.IntVar(&cfg.RedisDB, "redis-db", 0, "redis database")
	f.IntVar(&cfg.BoardSize, "board-size", cfg.BoardSize, "random board size")
	f.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "log level: debug, info, warn, error")

	return cmd
}

// flagFields maps serve flags to the config fields they set.
var flagFields = map[string]func(dst, src *config.Config){
	"addr":           func(d, s *config.Config) { d.Addr = s.Addr },
	"store":          func(d, s *config.Config) { d.Store = s.Store },
	"session-dir":    func(d, s *config.Config) { d.SessionDir = s.SessionDir },
	"session-ttl":    func(d, s *config.Config) { d.SessionTTL = s.SessionTTL },
	"cache":          func(d, s *config.Config) { d.Cache = s.Cache },
	"cache-dir":      func(d, s *config.Config) { d.CacheDir = s.CacheDir },
	"cache-prefix":   func(d, s *config.Config) { d.CachePrefix = s.CachePrefix },
	"redis-addr":     func(d, s *config.Config) { d.RedisAddr = s.RedisAddr },
	"redis-password": func(d, s *config.Config) { d.RedisPassword = s.RedisPassword },
	"redis-db":       func(d, s *config.Config) { d.RedisDB = s.RedisDB },
	"board-size":     func(d, s *config.Config) { d.BoardSize = s.BoardSize },
	"log-level":      func(d, s *config.Config) { d.LogLevel = s.LogLevel },
}

// loadServeConfig reads the config file, if any, and applies the flags the
// user set explicitly.
func loadServeConfig(cmd *cobra.Command, path string, flags config.Config) (config.Config, error) {
	if path == "" {
		return flags, flags.Validate()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, err
	}
	for name, set := range flagFields {
		if cmd.Flags().Changed(name) {
			set(&cfg, &flags)
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("flags: %w", err)
	}
	return cfg, nil
}
