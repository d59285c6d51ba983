// Package cli implements the dfpa command-line interface.
//
// # Commands
//
//   - color: greedy bound, then the population search, with optional rendering
//   - greedy: compare the greedy constructors on one graph
//   - info: graph statistics and lower bounds
//   - bench: run a benchmark suite
//   - sweep: repeat a suite over parameter or pollinator settings
//   - cache: manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// stored in the command context and also receives search, cache and
// benchmark events through observability hooks.
package cli

import (
	"context"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/dfpa/pkg/bench"
	"github.com/matzehuels/dfpa/pkg/buildinfo"
	"github.com/matzehuels/dfpa/pkg/cache"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "dfpa"

	// redisPrefix namespaces dfpa keys in a shared Redis instance.
	redisPrefix = "dfpa:"
)

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
	var verbose bool

	root := &cobra.Command{
		Use:   appName,
		Short: "dfpa colors graphs with a discrete flower pollination search",
		Long: `dfpa approximates the chromatic number of a graph. It starts from a greedy
coloring and evolves a population of colorings with one color fewer until no
proper coloring is found within the generation budget.`,
		Version:      buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				c.SetLogLevel(LogDebug)
			}
			c.installHooks()
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(c.colorCommand())
	root.AddCommand(c.greedyCommand())
	root.AddCommand(c.infoCommand())
	root.AddCommand(c.benchCommand())
	root.AddCommand(c.sweepCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// cacheFlags selects the result cache backend.
type cacheFlags struct {
	noCache  bool
	redisURL string
	dir      string
}

func (f *cacheFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable the result cache")
	cmd.Flags().StringVar(&f.redisURL, "redis", "", "store results in Redis (redis://host:port/db)")
	cmd.Flags().StringVar(&f.dir, "cache-dir", "", "cache directory (default: $XDG_CACHE_HOME/dfpa)")
}

// newRunner creates a benchmark runner for CLI use.
// The caller closes the returned cache.
func (c *CLI) newRunner(ctx context.Context, flags cacheFlags, workers int) (*bench.Runner, cache.Cache, error) {
	cc, err := newCache(ctx, flags)
	if err != nil {
		return nil, nil, err
	}
	r := bench.NewRunner(cc, nil, c.Logger)
	r.Workers = workers
	return r, cc, nil
}

func newCache(ctx context.Context, flags cacheFlags) (cache.Cache, error) {
	switch {
	case flags.noCache:
		return cache.NewNullCache(), nil
	case flags.redisURL != "":
		rc, err := cache.NewRedisCache(ctx, flags.redisURL, redisPrefix)
		if err != nil {
			return nil, err
		}
		return rc, nil
	}
	dir := flags.dir
	if dir == "" {
		d, err := cacheDir()
		if err != nil {
			return cache.NewNullCache(), nil
		}
		dir = d
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/dfpa/).
func cacheDir() (string, error) {
	return cache.DefaultDir()
}
