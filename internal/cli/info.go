package cli

import (
	"context"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/dfpa/pkg/cache"
	"github.com/matzehuels/dfpa/pkg/graph"
)

// infoCommand creates the info command: size, degree and bounds.
func (c *CLI) infoCommand() *cobra.Command {
	var (
		simple       bool
		exactTimeout time.Duration
		cf           cacheFlags
	)

	cmd := &cobra.Command{
		Use:   "info <graph.col>",
		Short: "Show graph statistics and chromatic number bounds",
		Long: `Info prints the size of a graph, its maximum degree, the clique lower bound
and the recursive-largest-first upper bound.

With --exact-timeout, an exact DSATUR branch and bound runs for at most that
long. Exact results are cached by graph content.`,
		Args:              cobra.ExactArgs(1),
		ValidArgsFunction: completeGraphFiles,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runInfo(cmd.Context(), args[0], simple, exactTimeout, cf)
		},
	}

	cmd.Flags().BoolVar(&simple, "simple", false, "read edges in simple mode (one direction per edge)")
	cmd.Flags().DurationVar(&exactTimeout, "exact-timeout", 0, "compute the exact chromatic number for at most this long")
	cf.register(cmd)
	return cmd
}

func (c *CLI) runInfo(ctx context.Context, path string, simple bool, exactTimeout time.Duration, cf cacheFlags) error {
	mode := graph.Standard
	if simple {
		mode = graph.Simple
	}
	g, err := graph.ReadFile(path, mode)
	if err != nil {
		return err
	}
	if simple {
		g = g.Symmetrize()
	}

	printInfo("Graph %s", StyleHighlight.Render(filepath.Base(path)))
	printKeyValue("Mode", mode.String())
	printKeyValue("Vertices", strconv.Itoa(g.Len()))
	printKeyValue("Edges", strconv.Itoa(g.EdgeCount()))
	printKeyValue("Max degree", strconv.Itoa(g.MaxDegree()))
	if n := g.Len(); n > 1 {
		density := float64(2*g.EdgeCount()) / float64(n*(n-1))
		printKeyValue("Density", strconv.FormatFloat(density, 'f', 3, 64))
	}
	printKeyValue("Clique ≥", StyleNumber.Render(strconv.Itoa(g.CliqueBound())))
	printKeyValue("RLF ≤", StyleNumber.Render(strconv.Itoa(g.RecursiveLargestFirst())))

	if exactTimeout <= 0 {
		return nil
	}
	k, exact, err := exactChromatic(ctx, g, path, exactTimeout, cf)
	if err != nil {
		return err
	}
	if exact {
		printKeyValue("Chromatic", StyleNumber.Render(strconv.Itoa(k)))
	} else {
		printKeyValue("Chromatic ≤", StyleNumber.Render(strconv.Itoa(k)))
		printWarning("exact search timed out after %s", exactTimeout)
	}
	return nil
}

// exactChromatic returns the exact chromatic number, or the best upper bound
// and false when the timeout expires first.
func exactChromatic(ctx context.Context, g *graph.Graph, path string, timeout time.Duration, cf cacheFlags) (int, bool, error) {
	cc, err := newCache(ctx, cf)
	if err != nil {
		return 0, false, err
	}
	defer cc.Close()
	cc = cache.WithHooks(cc, "bound")

	key := ""
	if hash, err := cache.HashFile(path); err == nil {
		key = cache.NewDefaultKeyer().BoundKey(hash, "exact")
		if data, hit, err := cc.Get(ctx, key); err == nil && hit {
			if k, err := strconv.Atoi(string(data)); err == nil {
				return k, true, nil
			}
		}
	}

	exactCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	spinner := newSpinnerWithContext(ctx, "Computing exact chromatic number...")
	spinner.Start()
	k, err := g.ExactChromatic(exactCtx)
	spinner.Stop()

	switch {
	case err == nil:
		if key != "" {
			_ = cc.Set(ctx, key, []byte(strconv.Itoa(k)), 0)
		}
		return k, true, nil
	case ctx.Err() != nil:
		return 0, false, ctx.Err()
	case exactCtx.Err() != nil:
		return k, false, nil
	default:
		return 0, false, fmt.Errorf("exact chromatic number: %w", err)
	}
}
