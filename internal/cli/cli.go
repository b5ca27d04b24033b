// Package cli implements the foilsweep command-line interface.
//
// Commands:
//   - resolve, export: turn a name or .dat file into coordinates
//   - sweep: run XFOIL across a Reynolds grid and save the polars
//   - plot, polars: draw the geometry or a saved polar dataset
//   - cache: inspect and clear the polar cache
//
// All commands accept --config (or FOILSWEEP_CONFIG) and --verbose.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/foilsweep/pkg/buildinfo"
	"github.com/matzehuels/foilsweep/pkg/cache"
	"github.com/matzehuels/foilsweep/pkg/config"
	"github.com/matzehuels/foilsweep/pkg/errors"
	"github.com/matzehuels/foilsweep/pkg/geometry"
	"github.com/matzehuels/foilsweep/pkg/observability"
	"github.com/matzehuels/foilsweep/pkg/solver"
	"github.com/matzehuels/foilsweep/pkg/solver/xfoil"
	"github.com/matzehuels/foilsweep/pkg/source"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string

	// newSolver builds the solver for sweep; tests replace it.
	newSolver func(cfg config.Config, logger *log.Logger) (solver.Solver, error)
}

// New creates a CLI writing log output to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger:    newLogger(w, level),
		newSolver: newXFOIL,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "foilsweep computes airfoil polars with XFOIL",
		Long: `foilsweep resolves an airfoil by name (NACA 4/5-digit, a local catalog,
or the UIUC coordinate database) or from a .dat file, and runs XFOIL across a
sweep of Reynolds numbers and angles of attack to build a polar dataset.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			hooks := logHooks{logger: c.Logger}
			observability.SetCacheHooks(hooks)
			observability.SetHTTPHooks(hooks)
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $"+config.EnvConfig+" or ~/.config/foilsweep/config.toml)")

	root.AddCommand(c.resolveCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.plotCommand())
	root.AddCommand(c.polarsCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file selected by --config.
func (c *CLI) loadConfig() (config.Config, error) {
	return config.Load(c.configPath)
}

// newCache opens the cache backend selected by cfg. A file cache that
// cannot be created degrades to no caching.
func (c *CLI) newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL, cfg.Cache.Prefix)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis cache")
		}
		return rc, nil
	}
	dir, err := cfg.CacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "dir", dir, "err", err)
		return cache.NewNullCache(), nil
	}
	return fc, nil
}

// resolveAirfoil builds the default resolver and constructs the airfoil.
func (c *CLI) resolveAirfoil(ctx context.Context, cfg config.Config, ch cache.Cache, name, path string) (*geometry.Airfoil, error) {
	r, err := source.NewResolver(cfg, ch, c.Logger)
	if err != nil {
		return nil, err
	}
	return geometry.New(ctx, r, name, path)
}

// nameArg returns the optional positional airfoil name.
func nameArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return ""
}

// requireNameOrFile rejects invocations with neither a name nor --file.
func requireNameOrFile(args []string, file string) error {
	if len(args) == 0 && file == "" {
		return errors.New(errors.ErrCodeInvalidInput, "an airfoil name or --file is required")
	}
	return nil
}

func newXFOIL(cfg config.Config, logger *log.Logger) (solver.Solver, error) {
	s := xfoil.New(xfoil.Options{
		Binary:  cfg.Solver.Binary,
		Timeout: cfg.Solver.Timeout.Duration,
		Repanel: cfg.Solver.Repanel,
		Logger:  logger,
	})
	if err := s.Check(); err != nil {
		return nil, err
	}
	return s, nil
}
