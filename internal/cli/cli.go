// Package cli implements the coursefinder command-line interface.
//
// This package provides commands for searching the UMD course catalog from
// the terminal, an interactive search form, the web dashboard and cache
// management. The CLI is built using cobra and supports verbose logging via
// the charmbracelet/log library.
//
// # Commands
//
// The main commands are:
//   - search: One-shot search rendering a table (or markdown, CSV, HTML, JSON)
//   - tui: Interactive search form
//   - serve: Web dashboard
//   - semesters: List semester codes with their labels
//   - cache: Manage the on-disk response cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// logs every catalog request and cache hit. Loggers are passed through
// context.Context.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/coursefinder/pkg/buildinfo"
	"github.com/matzehuels/coursefinder/pkg/cache"
	"github.com/matzehuels/coursefinder/pkg/config"
	"github.com/matzehuels/coursefinder/pkg/integrations/umdio"
	"github.com/matzehuels/coursefinder/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
	LogError = log.ErrorLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Out receives command output. Defaults to os.Stdout in main.
	Out io.Writer

	configPath string
	verbose    bool
}

// New creates a new CLI instance writing logs to logw and output to out.
func New(out, logw io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(logw, level),
		Out:    out,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Look up UMD courses, seats and professors",
		Long:         `coursefinder searches the University of Maryland course catalog by department, course id, gen-ed requirement, professor and semester, and shows open seats and instructors for every match.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
			}
			c.SetLogLevel(level)
			if c.verbose {
				registerLogHooks(c.Logger)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.Out)
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/coursefinder/config.toml)")

	root.AddCommand(c.searchCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.semestersCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// session bundles what a command needs to run searches.
type session struct {
	cfg    config.Config
	cache  cache.Cache
	runner *pipeline.Runner
}

// Close releases the cache backend.
func (s *session) Close() error { return s.cache.Close() }

// runnerOpts are per-command overrides of the configuration.
type runnerOpts struct {
	noCache bool
	refresh bool
	workers int // 0 keeps the configured value
}

// loadConfig reads the config file named by --config, or the default one.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newSession loads the configuration, opens the cache and builds a runner.
func (c *CLI) newSession(ctx context.Context, opts runnerOpts) (*session, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return nil, err
	}
	if opts.workers > 0 {
		cfg.Search.Workers = opts.workers
	}

	backend, keyer, err := cfg.OpenCache(ctx, opts.noCache)
	if err != nil {
		c.Logger.Warn("cache unavailable, continuing without it", "backend", cfg.Cache.Backend, "err", err)
		backend, keyer = cache.NewNullCache(), cache.NewDefaultKeyer()
	}

	client := umdio.NewClient(backend, cfg.UmdioOptions(keyer, opts.refresh))
	runner := pipeline.NewRunner(client, pipeline.Options{
		Workers:         cfg.Search.Workers,
		ReuseProfessors: cfg.Search.ReuseProfessors,
	}, c.Logger)

	c.Logger.Debug("session ready",
		"base_url", client.BaseURL(),
		"cache", cfg.Cache.Backend,
		"workers", cfg.Search.Workers)

	return &session{cfg: cfg, cache: backend, runner: runner}, nil
}
