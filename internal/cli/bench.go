package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfpa/pkg/bench"
	"github.com/matzehuels/dfpa/pkg/observability"
)

// suiteFlags override settings of a loaded suite.
type suiteFlags struct {
	instances      []string
	graphDir       string
	tries          int
	pollinator     string
	populationSize int
	maxGenerations int
	seed           uint64
	workers        int
	jsonPath       string
	chartPath      string
	cache          cacheFlags
}

func (f *suiteFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringSliceVarP(&f.instances, "instance", "i", nil, "run only these instances")
	fl.StringVar(&f.graphDir, "graph-dir", "", "directory holding <instance>.col files")
	fl.IntVarP(&f.tries, "tries", "t", 0, "runs per instance (default: from suite)")
	fl.StringVarP(&f.pollinator, "pollinator", "p", "", "pollinator (default: from suite)")
	fl.IntVarP(&f.populationSize, "population", "n", 0, "colorings per target (default: from suite)")
	fl.IntVarP(&f.maxGenerations, "generations", "g", 0, "generation budget per target (default: from suite)")
	fl.Uint64Var(&f.seed, "seed", 0, "base seed; try i uses seed+i (default: from suite, else random)")
	fl.IntVarP(&f.workers, "workers", "w", 0, "concurrent slot updates per run (default: GOMAXPROCS)")
	fl.StringVar(&f.jsonPath, "json", "", "write the report as JSON")
	fl.StringVar(&f.chartPath, "chart", "", "write an HTML chart")
	f.cache.register(cmd)
}

// loadSuite reads the suite named by args (the built-in one when empty)
// and applies the overrides.
func (f *suiteFlags) loadSuite(args []string) (bench.Suite, error) {
	s := bench.FinalSuite()
	if len(args) > 0 {
		var err error
		if s, err = bench.LoadSuite(args[0]); err != nil {
			return bench.Suite{}, err
		}
	}
	s, err := s.Select(f.instances...)
	if err != nil {
		return bench.Suite{}, err
	}
	if f.graphDir != "" {
		s.GraphDir = f.graphDir
	}
	if f.tries > 0 {
		s.Tries = f.tries
	}
	if f.pollinator != "" {
		s.Pollinator = f.pollinator
	}
	if f.populationSize > 0 {
		s.PopulationSize = f.populationSize
	}
	if f.maxGenerations > 0 {
		s.MaxGenerations = f.maxGenerations
	}
	if f.seed != 0 {
		s.Seed = f.seed
	}
	return s, s.Validate()
}

// benchCommand creates the bench command.
func (c *CLI) benchCommand() *cobra.Command {
	var flags suiteFlags

	cmd := &cobra.Command{
		Use:   "bench [suite.toml]",
		Short: "Run a benchmark suite",
		Long: `Bench runs every instance of a suite several times, starting one color below
the greedy bound and stopping at the known chromatic number.

Without a suite file the built-in "final" suite of DIMACS instances is used;
its graphs are read from ./graphs. Finished tries are cached, so an
interrupted run resumes where it stopped.`,
		Example: `  dfpa bench
  dfpa bench --instance DSJC125.1,le450_5a --tries 3
  dfpa bench suites/small.toml --json small.json --chart small.html`,
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSuiteFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s, err := flags.loadSuite(args)
			if err != nil {
				return err
			}
			r, cc, err := c.newRunner(ctx, flags.cache, flags.workers)
			if err != nil {
				return err
			}
			defer cc.Close()
			r.Hooks = tryPrinter{next: observability.Bench()}

			report, err := r.RunSuite(ctx, s)
			if err != nil {
				return err
			}
			printNewline()
			fmt.Print(bench.Table(report))
			return writeReports(flags, report, func(w io.Writer) error { return bench.WriteChart(w, report) })
		},
	}

	flags.register(cmd)
	return cmd
}

// sweepCommand creates the sweep command with its params and pollinators
// subcommands.
func (c *CLI) sweepCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Repeat a suite over parameter or pollinator settings",
	}
	cmd.AddCommand(c.sweepParamsCommand())
	cmd.AddCommand(c.sweepPollinatorsCommand())
	return cmd
}

func (c *CLI) sweepParamsCommand() *cobra.Command {
	var (
		flags    suiteFlags
		lambdas  []float64
		switches []float64
	)

	cmd := &cobra.Command{
		Use:               "params [suite.toml]",
		Short:             "Sweep lambda × switch_p",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSuiteFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd.Context(), flags, args, func(r *bench.Runner, s bench.Suite) (*bench.SweepResult, error) {
				return r.SweepParameters(cmd.Context(), s, lambdas, switches)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().Float64SliceVar(&lambdas, "lambdas", bench.DefaultLambdas, "lambda values")
	cmd.Flags().Float64SliceVar(&switches, "switches", bench.DefaultSwitches, "switch_p values")
	return cmd
}

func (c *CLI) sweepPollinatorsCommand() *cobra.Command {
	var (
		flags suiteFlags
		names []string
	)

	cmd := &cobra.Command{
		Use:               "pollinators [suite.toml]",
		Short:             "Compare pollinators on a suite",
		Args:              cobra.MaximumNArgs(1),
		ValidArgsFunction: completeSuiteFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd.Context(), flags, args, func(r *bench.Runner, s bench.Suite) (*bench.SweepResult, error) {
				return r.SweepPollinators(cmd.Context(), s, names)
			})
		},
	}

	flags.register(cmd)
	cmd.Flags().StringSliceVar(&names, "pollinators", nil, "pollinators to compare (default: all)")
	return cmd
}

func (c *CLI) runSweep(ctx context.Context, flags suiteFlags, args []string, sweep func(*bench.Runner, bench.Suite) (*bench.SweepResult, error)) error {
	s, err := flags.loadSuite(args)
	if err != nil {
		return err
	}
	r, cc, err := c.newRunner(ctx, flags.cache, flags.workers)
	if err != nil {
		return err
	}
	defer cc.Close()

	prog := newProgress(c.Logger)
	res, err := sweep(r, s)
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("sweep %s: %d settings", res.Kind, len(res.Points)))

	printNewline()
	fmt.Print(bench.SweepTable(res))
	if best, ok := res.Best(); ok {
		printSuccess("Best setting %s (total %.2f)", StyleHighlight.Render(best.Label), best.Total)
	}
	return writeReports(flags, res, func(w io.Writer) error { return bench.WriteSweepChart(w, res) })
}

// writeReports writes the JSON and chart files requested by flags.
func writeReports(flags suiteFlags, v any, chart func(io.Writer) error) error {
	if flags.jsonPath != "" {
		if err := writeFile(flags.jsonPath, func(w io.Writer) error { return bench.WriteJSON(w, v) }); err != nil {
			return err
		}
		printFile(flags.jsonPath)
	}
	if flags.chartPath != "" {
		if err := writeFile(flags.chartPath, chart); err != nil {
			return err
		}
		printFile(flags.chartPath)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// tryPrinter prints one status line per finished try and forwards events.
type tryPrinter struct {
	next observability.BenchHooks
}

func (p tryPrinter) OnRunStart(ctx context.Context, instance string, try int) {
	p.next.OnRunStart(ctx, instance, try)
}

func (p tryPrinter) OnRunComplete(ctx context.Context, instance string, try, colors int, cached bool, duration time.Duration, err error) {
	p.next.OnRunComplete(ctx, instance, try, colors, cached, duration, err)
	if err == nil {
		printTryStatus(instance, try, colors, cached)
	}
}
