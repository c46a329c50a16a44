// Package cli implements the gridboard command-line interface.
//
// The CLI places layout files, renders boards, plays with a board in the
// terminal and serves the HTTP API. All commands support --verbose (-v) for
// debug-level logging.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridboard/pkg/buildinfo"
	"github.com/matzehuels/gridboard/pkg/cache"
	"github.com/matzehuels/gridboard/pkg/service"
	"github.com/matzehuels/gridboard/pkg/session"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "gridboard"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Gridboard packs and rearranges components on a grid",
		Long:         `Gridboard places variably sized components on a fixed-width grid and keeps them packed while they are dragged around.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.packCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.playCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.sessionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Service Factory
// =============================================================================

// newService creates a service for one-shot CLI use: boards live in memory
// and placements are cached on disk unless noCache is set.
func (c *CLI) newService(noCache bool) *service.Service {
	return service.New(session.NewMemoryStore(), newCache(noCache, c.Logger), nil, c.Logger)
}

func newCache(noCache bool, logger *log.Logger) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cache.DefaultDir()
	if err != nil {
		logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		logger.Debug("cache disabled", "error", err)
		return cache.NewNullCache()
	}
	return cache.Instrumented(fc)
}

// contextLogger returns the command's logger.
func contextLogger(cmd *cobra.Command) *log.Logger {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return loggerFromContext(ctx)
}
