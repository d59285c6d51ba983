package search

import (
	"context"
	"math/rand/v2"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/observability"
	"github.com/matzehuels/dfpa/pkg/pollinate"
)

// ErrAsymmetricGraph is returned by [New] for graphs that do not record
// every edge in both directions, such as graphs read in simple mode.
var ErrAsymmetricGraph = errors.New(errors.ErrCodeInvalidGraph,
	"search needs a symmetric graph; use Symmetrize on simple-mode graphs")

// TargetStats describes the work spent on one target color count.
type TargetStats struct {
	K           int           `json:"k"`
	Generations int           `json:"generations"`
	Found       bool          `json:"found"`
	Duration    time.Duration `json:"duration"`
}

// Result is the outcome of [Searcher.Run].
type Result struct {
	// Colors is the reported color count. It is Stop when the stop threshold
	// was reached, and k+1 when the generations for target k ran out.
	Colors int

	// Best is the last proper coloring found, or nil if none was.
	Best *coloring.Coloring

	Generations int           // Generations run over all targets
	Targets     []TargetStats // One entry per target k, in order
	Seed        uint64        // Seed actually used
	Duration    time.Duration // Wall time of the run
}

// Searcher runs the population search on one graph.
// A Searcher may be reused; each Run is independent.
type Searcher struct {
	g    *graph.Graph
	opts Options
	pol  pollinate.Pollinator
}

// New validates opts (after applying defaults) and returns a Searcher for g.
func New(g *graph.Graph, opts Options) (*Searcher, error) {
	if g.Mode() != graph.Standard || !g.Symmetric() {
		return nil, ErrAsymmetricGraph
	}
	opts = opts.WithDefaults()
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	pol, err := pollinate.Lookup(opts.Pollinator)
	if err != nil {
		return nil, err
	}
	return &Searcher{g: g, opts: opts, pol: pol}, nil
}

// Options returns the effective options, defaults included.
func (s *Searcher) Options() Options { return s.opts }

// WithHooks returns a copy of s that reports events to h instead.
func (s *Searcher) WithHooks(h observability.SearchHooks) *Searcher {
	cp := *s
	cp.opts.Hooks = h
	return &cp
}

// Run searches downward from initialK colors.
//
// The returned Result is non-nil even when err is, and then describes the
// work done before the failure.
func (s *Searcher) Run(ctx context.Context, initialK int) (res *Result, err error) {
	start := time.Now()
	seed := s.opts.Seed
	if seed == 0 {
		seed = randomSeed()
	}
	res = &Result{Seed: seed}
	defer func() {
		res.Duration = time.Since(start)
		s.opts.Hooks.OnSearchComplete(ctx, res.Colors, res.Generations, res.Duration, err)
	}()

	stop := s.opts.Stop
	switch {
	case initialK < stop:
		res.Colors = stop
		return res, nil
	case s.g.Len() == 0:
		return res, nil
	case initialK < 1:
		return res, errors.New(errors.ErrCodeInvalidInput, "initial color count must be positive, got %d", initialK)
	}

	for k := initialK; ; k-- {
		found, stats, err := s.runTarget(ctx, k, seed, start)
		res.Generations += stats.Generations
		res.Targets = append(res.Targets, stats)
		if err != nil {
			res.Colors = k + 1
			return res, err
		}
		if found == nil {
			res.Colors = k + 1
			return res, nil
		}
		res.Best = found
		if k-1 < stop {
			res.Colors = stop
			return res, nil
		}
		if k == 1 {
			res.Colors = 1
			return res, nil
		}
	}
}

// runTarget evolves a fresh population with k colors. It returns the first
// proper coloring found, or nil when the generation budget is exhausted.
func (s *Searcher) runTarget(ctx context.Context, k int, seed uint64, runStart time.Time) (*coloring.Coloring, TargetStats, error) {
	start := time.Now()
	stats := TargetStats{K: k}

	rngs := slotRNGs(seed, k, s.opts.PopulationSize)
	pop := coloring.Populate(s.g, k, rngs)
	s.opts.Hooks.OnTargetStart(ctx, k, len(pop))

	for gen := 0; gen < s.opts.MaxGenerations; gen++ {
		if err := ctx.Err(); err != nil {
			stats.Generations = gen
			stats.Duration = time.Since(start)
			return nil, stats, err
		}

		best := pop[s.reduce(pop)].Clone()
		if gen%s.opts.ProgressEvery == 0 {
			s.opts.Hooks.OnGeneration(ctx, k, gen, best.TotalConflicts())
		}
		if best.TotalConflicts() == 0 {
			stats.Generations, stats.Found = gen, true
			stats.Duration = time.Since(start)
			s.opts.Hooks.OnColoringFound(ctx, k, gen, time.Since(runStart))
			return best, stats, nil
		}

		if err := s.update(pop, rngs, best, k); err != nil {
			stats.Generations = gen + 1
			stats.Duration = time.Since(start)
			return nil, stats, err
		}
	}
	stats.Generations = s.opts.MaxGenerations
	stats.Duration = time.Since(start)
	return nil, stats, nil
}

// =============================================================================
// Fork-Join Stages
// =============================================================================

// reduce returns the slot with the fewest conflicts, ties to the lowest slot.
// Each worker scans a contiguous chunk; chunk minima are merged in slot order.
func (s *Searcher) reduce(pop []*coloring.Coloring) int {
	workers := min(s.opts.Workers, len(pop))
	if workers <= 1 {
		return argmin(pop, 0, len(pop))
	}

	chunk := (len(pop) + workers - 1) / workers
	parts := make([]int, workers)
	var eg errgroup.Group
	for w := range parts {
		lo, hi := w*chunk, min((w+1)*chunk, len(pop))
		if lo >= hi {
			parts[w] = -1
			continue
		}
		eg.Go(func() error {
			parts[w] = argmin(pop, lo, hi)
			return nil
		})
	}
	_ = eg.Wait()

	best := -1
	for _, i := range parts {
		if i >= 0 && (best < 0 || pop[i].TotalConflicts() < pop[best].TotalConflicts()) {
			best = i
		}
	}
	return best
}

func argmin(pop []*coloring.Coloring, lo, hi int) int {
	best := lo
	for i := lo + 1; i < hi; i++ {
		if pop[i].TotalConflicts() < pop[best].TotalConflicts() {
			best = i
		}
	}
	return best
}

// update runs one step for every slot. Slot i is written only by its own
// task; best is a frozen copy shared read-only.
func (s *Searcher) update(pop []*coloring.Coloring, rngs []*rand.Rand, best *coloring.Coloring, k int) error {
	if s.opts.Workers <= 1 {
		for i := range pop {
			if err := s.step(pop, i, rngs[i], best, k); err != nil {
				return err
			}
		}
		return nil
	}

	var eg errgroup.Group
	eg.SetLimit(s.opts.Workers)
	for i := range pop {
		eg.Go(func() error {
			return s.step(pop, i, rngs[i], best, k)
		})
	}
	return eg.Wait()
}

// step applies reinitialization or one pollination to slot i and the
// acceptance rule to its candidate.
func (s *Searcher) step(pop []*coloring.Coloring, i int, rng *rand.Rand, best *coloring.Coloring, k int) error {
	p := s.opts.Parameters
	x := pop[i]
	isBest := x.ID() == best.ID()

	if x.Lifetime() > p.LifetimeLimit && rng.Float64() < p.SwitchP && !isBest {
		pop[i] = coloring.New(s.g, k, x.ID(), rng)
		return nil
	}

	var (
		cand *coloring.Coloring
		err  error
	)
	if rng.Float64() < p.SwitchP && !isBest {
		cand, err = s.pol.Global(rng, s.g, best, x, p.Lambda)
	} else {
		cand, err = s.pol.Local(rng, s.g, x, k, p.Lambda)
	}
	if err != nil {
		return errors.Wrap(errors.GetCode(err), err, "slot %d", i)
	}

	switch {
	case cand.TotalConflicts() < x.TotalConflicts():
		cand.SetLifetime(0)
		pop[i] = cand
	case cand.TotalConflicts() == x.TotalConflicts():
		cand.SetLifetime(x.Lifetime() + 1)
		pop[i] = cand
	default:
		x.SetLifetime(x.Lifetime() + 1)
	}
	return nil
}

// =============================================================================
// Convenience
// =============================================================================

// Search runs a search with default options except for the given population
// size, parameters and stop threshold, and returns the color count.
func Search(ctx context.Context, g *graph.Graph, popSize, initialK int, params Parameters, stop int) (int, error) {
	s, err := New(g, Options{
		Parameters:     params,
		PopulationSize: popSize,
		Stop:           stop,
	})
	if err != nil {
		return 0, err
	}
	res, err := s.Run(ctx, initialK)
	if err != nil {
		return 0, err
	}
	return res.Colors, nil
}
