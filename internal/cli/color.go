package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/greedy"
	"github.com/matzehuels/dfpa/pkg/pollinate"
	"github.com/matzehuels/dfpa/pkg/render"
	"github.com/matzehuels/dfpa/pkg/search"
)

// colorFlags holds the flags of the color command.
type colorFlags struct {
	search.Options
	greedy     string
	initialK   int
	out        string
	renderPath string
	dotPath    string
	live       bool
}

// colorCommand creates the color command: greedy bound, then search.
func (c *CLI) colorCommand() *cobra.Command {
	flags := colorFlags{Options: search.DefaultOptions()}
	flags.Hooks = nil // resolved per run, after the CLI hooks are installed

	cmd := &cobra.Command{
		Use:   "color <graph.col>",
		Short: "Color a DIMACS graph with as few colors as possible",
		Long: `Color builds a greedy coloring, then searches for proper colorings with one
color fewer at a time until the generation budget for a target runs out.

The reported count is the smallest k for which a proper coloring was found.`,
		Example: `  dfpa color graphs/DSJC125.1.col
  dfpa color graphs/le450_5a.col --pollinator worst-first --seed 42 --out le450_5a.sol
  dfpa color graphs/myciel5.col --render myciel5.svg --live`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := checkParameterFlags(cmd, flags.Parameters); err != nil {
				return err
			}
			return c.runColor(cmd.Context(), args[0], flags)
		},
	}

	f := cmd.Flags()
	f.IntVarP(&flags.PopulationSize, "population", "n", flags.PopulationSize, "colorings per target")
	f.IntVarP(&flags.MaxGenerations, "generations", "g", flags.MaxGenerations, "generation budget per target")
	f.Float64Var(&flags.Parameters.Lambda, "lambda", flags.Parameters.Lambda, "Levy scale")
	f.Float64Var(&flags.Parameters.SwitchP, "switch-p", flags.Parameters.SwitchP, "probability of global pollination and reinitialization")
	f.IntVar(&flags.Parameters.LifetimeLimit, "lifetime", flags.Parameters.LifetimeLimit, "generations without improvement before reinitialization")
	f.StringVarP(&flags.Pollinator, "pollinator", "p", flags.Pollinator, "pollinator: "+strings.Join(pollinate.Names(), ", "))
	f.StringVar(&flags.greedy, "greedy", "dsatur-incremental", "initial constructor: "+strings.Join(greedyNames(), ", "))
	f.IntVarP(&flags.initialK, "k", "k", 0, "first target color count (default: greedy bound - 1)")
	f.Uint64Var(&flags.Seed, "seed", 0, "random seed (0: random)")
	f.IntVarP(&flags.Workers, "workers", "w", flags.Workers, "concurrent slot updates")
	f.IntVar(&flags.Stop, "stop", 0, "stop once this many colors are reached (e.g. a known chromatic number)")
	f.IntVar(&flags.ProgressEvery, "progress-every", flags.ProgressEvery, "generations between progress events")
	f.StringVarP(&flags.out, "out", "o", "", "write the coloring as 'vertex color' lines")
	f.StringVar(&flags.renderPath, "render", "", "render the coloring (.svg, .png or .dot)")
	f.StringVar(&flags.dotPath, "dot", "", "write Graphviz DOT source")
	f.BoolVar(&flags.live, "live", false, "show a live progress view")

	return cmd
}

// checkParameterFlags validates the search parameters when any of them was
// set on the command line. WithDefaults would otherwise replace an all-zero
// set with the standard parameters.
func checkParameterFlags(cmd *cobra.Command, p search.Parameters) error {
	for _, name := range []string{"lambda", "switch-p", "lifetime"} {
		if cmd.Flags().Changed(name) {
			return p.Validate()
		}
	}
	return nil
}

func (c *CLI) runColor(ctx context.Context, path string, flags colorFlags) error {
	logger := loggerFromContext(ctx)

	g, err := graph.ReadFile(path, graph.Standard)
	if err != nil {
		return err
	}
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	printInfo("Graph %s", StyleHighlight.Render(name))
	printGraphStats(g.Len(), g.EdgeCount(), g.MaxDegree())

	construct, ok := greedy.Lookup(flags.greedy)
	if !ok {
		return fmt.Errorf("unknown greedy constructor %q (valid: %s)", flags.greedy, strings.Join(greedyNames(), ", "))
	}
	prog := newProgress(logger)
	greedyK, initial := construct(g)
	prog.done(fmt.Sprintf("%s bound %d", flags.greedy, greedyK))

	initialK := flags.initialK
	if initialK <= 0 {
		initialK = max(greedyK-1, 1)
	}

	searcher, err := search.New(g, flags.Options)
	if err != nil {
		return err
	}

	var res *search.Result
	if flags.live {
		res, err = runLive(ctx, searcher, name, initialK)
	} else {
		res, err = searcher.Run(ctx, initialK)
	}
	if err != nil {
		return err
	}

	best := res.Best
	colors := res.Colors
	if best == nil || colors > greedyK {
		best, colors = initial, greedyK
	}

	printNewline()
	printKeyValue("Greedy", fmt.Sprint(greedyK))
	printKeyValue("Colors", StyleNumber.Render(fmt.Sprint(colors)))
	printKeyValue("Generations", fmt.Sprint(res.Generations))
	printKeyValue("Seed", fmt.Sprint(res.Seed))
	printKeyValue("Time", res.Duration.Round(time.Millisecond).String())

	if err := writeOutputs(ctx, g, best, flags); err != nil {
		return err
	}
	printSuccess("Colored %s with %d colors", name, colors)
	return nil
}

// writeOutputs writes the solution, DOT and rendered files requested by flags.
func writeOutputs(ctx context.Context, g *graph.Graph, best *coloring.Coloring, flags colorFlags) error {
	if flags.out != "" {
		if err := writeSolution(flags.out, best); err != nil {
			return err
		}
		printFile(flags.out)
	}

	if flags.dotPath == "" && flags.renderPath == "" {
		return nil
	}
	dot := render.ToDOT(g, best.Solution(), render.Options{OneBased: true})

	if flags.dotPath != "" {
		if err := os.WriteFile(flags.dotPath, []byte(dot), 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flags.dotPath, err)
		}
		printFile(flags.dotPath)
	}

	if flags.renderPath != "" {
		format, err := render.ParseFormat(filepath.Ext(flags.renderPath))
		if err != nil {
			return err
		}
		spinner := newSpinnerWithContext(ctx, "Rendering...")
		spinner.Start()
		data, err := render.Render(ctx, dot, format)
		spinner.Stop()
		if err != nil {
			return err
		}
		if err := os.WriteFile(flags.renderPath, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", flags.renderPath, err)
		}
		printFile(flags.renderPath)
	}
	return nil
}

// writeSolution writes one "vertex color" line per vertex, vertices one-based.
func writeSolution(path string, c *coloring.Coloring) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	fmt.Fprintf(w, "c %d colors\n", c.K())
	for v, col := range c.Solution() {
		fmt.Fprintf(w, "%d %d\n", v+1, col)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

func greedyNames() []string {
	names := make([]string, len(greedy.Variants))
	for i, v := range greedy.Variants {
		names[i] = v.Name
	}
	return names
}
