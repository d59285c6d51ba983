package search

import (
	"context"
	"math/rand/v2"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/greedy"
	"github.com/matzehuels/dfpa/pkg/observability"
	"github.com/matzehuels/dfpa/pkg/pollinate"
)

func randomGraph(t *testing.T, seed uint64, n int, p float64) *graph.Graph {
	t.Helper()
	rng := rand.New(rand.NewPCG(seed, seed^0xff))
	var edges []graph.Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			if rng.Float64() < p {
				edges = append(edges, graph.Edge{U: u, V: v})
			}
		}
	}
	g, err := graph.FromEdges(n, edges, graph.Standard)
	require.NoError(t, err)
	return g
}

func testOptions() Options {
	return Options{
		MaxGenerations: 500,
		Seed:           42,
		Workers:        1,
		Hooks:          observability.NoopSearchHooks{},
	}
}

func run(t *testing.T, g *graph.Graph, opts Options, initialK int) *Result {
	t.Helper()
	s, err := New(g, opts)
	require.NoError(t, err)
	res, err := s.Run(context.Background(), initialK)
	require.NoError(t, err)
	return res
}

func TestParametersValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Parameters)
		wantErr bool
	}{
		{"standard", func(*Parameters) {}, false},
		{"zero lambda", func(p *Parameters) { p.Lambda = 0 }, true},
		{"negative lambda", func(p *Parameters) { p.Lambda = -1 }, true},
		{"switch below 0", func(p *Parameters) { p.SwitchP = -0.1 }, true},
		{"switch above 1", func(p *Parameters) { p.SwitchP = 1.5 }, true},
		{"switch bounds", func(p *Parameters) { p.SwitchP = 1 }, false},
		{"negative lifetime", func(p *Parameters) { p.LifetimeLimit = -1 }, true},
		{"zero lifetime", func(p *Parameters) { p.LifetimeLimit = 0 }, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := StandardParameters()
			tt.mutate(&p)
			err := p.Validate()
			if tt.wantErr {
				assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameters), "err = %v", err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDefaultOptions(t *testing.T) {
	o := DefaultOptions()
	assert.Equal(t, StandardParameters(), o.Parameters)
	assert.Equal(t, DefaultPopulationSize, o.PopulationSize)
	assert.Equal(t, DefaultMaxGenerations, o.MaxGenerations)
	assert.Equal(t, pollinate.Default, o.Pollinator)
	assert.Equal(t, o.Pollinator, pollinate.MustLookup(o.Pollinator).Name())
	assert.Positive(t, o.Workers)
	assert.NotNil(t, o.Hooks)
	assert.NoError(t, o.Validate())
}

func TestNewRejects(t *testing.T) {
	simple, err := graph.FromEdges(3, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}}, graph.Simple)
	require.NoError(t, err)
	_, err = New(simple, testOptions())
	assert.ErrorIs(t, err, ErrAsymmetricGraph)

	_, err = New(simple.Symmetrize(), testOptions())
	assert.NoError(t, err)

	opts := testOptions()
	opts.Pollinator = "unknown"
	_, err = New(graph.Cycle(5), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameters))

	opts = testOptions()
	opts.Parameters = Parameters{Lambda: 1, SwitchP: 2}
	_, err = New(graph.Cycle(5), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameters))

	opts = testOptions()
	opts.Stop = -1
	_, err = New(graph.Cycle(5), opts)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidParameters))
}

func TestScenarios(t *testing.T) {
	tests := []struct {
		name     string
		g        *graph.Graph
		initialK int
		want     int
	}{
		{"odd cycle needs 3", graph.Cycle(5), 2, 3},
		{"odd cycle from above", graph.Cycle(5), 4, 3},
		{"K4 needs 4", graph.Complete(4), 3, 4},
		{"C4 is bipartite", graph.Cycle(4), 3, 2},
		{"K3,3 is bipartite", graph.CompleteBipartite(3, 3), 4, 2},
		{"edgeless graph", graph.Cycle(1), 2, 1},
	}
	for _, tt := range tests {
		for _, name := range pollinate.Names() {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				opts := testOptions()
				opts.Pollinator = name
				res := run(t, tt.g, opts, tt.initialK)
				assert.Equal(t, tt.want, res.Colors)
				if res.Best != nil {
					assert.True(t, res.Best.IsProper())
					assert.True(t, res.Best.Consistent(tt.g))
					assert.LessOrEqual(t, res.Best.K(), res.Colors)
				}
			})
		}
	}
}

func TestGreedyThenSearch(t *testing.T) {
	g := graph.Cycle(5)
	kUsed, c := greedy.DSATURIncremental(g)
	require.Equal(t, 3, kUsed)
	require.True(t, c.IsProper())

	res := run(t, g, testOptions(), kUsed-1)
	assert.Equal(t, 3, res.Colors)
	assert.Nil(t, res.Best, "no 2-coloring of C5 exists")
	require.Len(t, res.Targets, 1)
	if diff := cmp.Diff(TargetStats{K: 2, Generations: 500}, res.Targets[0], cmpopts.IgnoreFields(TargetStats{}, "Duration")); diff != "" {
		t.Errorf("target stats mismatch (-want +got):\n%s", diff)
	}
}

func TestStopThreshold(t *testing.T) {
	g := graph.Cycle(4)
	opts := testOptions()
	opts.Stop = 3

	res := run(t, g, opts, 4)
	assert.Equal(t, 3, res.Colors)
	require.NotNil(t, res.Best)
	assert.True(t, res.Best.IsProper())
	assert.Len(t, res.Targets, 2)

	// Starting below the threshold returns it without searching.
	res = run(t, g, opts, 2)
	assert.Equal(t, 3, res.Colors)
	assert.Empty(t, res.Targets)
	assert.Zero(t, res.Generations)
}

func TestEmptyGraph(t *testing.T) {
	res := run(t, graph.Complete(0), testOptions(), 0)
	assert.Equal(t, 0, res.Colors)
}

func TestInvalidInitialK(t *testing.T) {
	s, err := New(graph.Cycle(4), testOptions())
	require.NoError(t, err)
	res, err := s.Run(context.Background(), 0)
	assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput))
	assert.NotNil(t, res)
}

func TestNeverBelowChromaticNumber(t *testing.T) {
	for seed := uint64(1); seed <= 5; seed++ {
		g := randomGraph(t, seed, 14, 0.45)
		chi, err := g.ExactChromatic(context.Background())
		require.NoError(t, err)

		kUsed, _ := greedy.DSATUR(g)
		opts := testOptions()
		opts.Seed = seed
		res := run(t, g, opts, kUsed-1)
		assert.GreaterOrEqual(t, res.Colors, chi, "seed %d", seed)
		assert.LessOrEqual(t, res.Colors, kUsed, "seed %d", seed)
		if res.Best != nil {
			assert.True(t, res.Best.IsProper())
		}
	}
}

// recorder captures search events. OnGeneration is recorded with every
// argument so runs can be compared generation by generation.
type recorder struct {
	mu      sync.Mutex
	targets []int
	gens    [][3]int
	found   []int
	done    int
}

func (r *recorder) OnTargetStart(_ context.Context, k, _ int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.targets = append(r.targets, k)
}

func (r *recorder) OnGeneration(_ context.Context, k, gen, best int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gens = append(r.gens, [3]int{k, gen, best})
}

func (r *recorder) OnColoringFound(_ context.Context, k, _ int, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.found = append(r.found, k)
}

func (r *recorder) OnSearchComplete(context.Context, int, int, time.Duration, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.done++
}

func TestHooks(t *testing.T) {
	rec := &recorder{}
	opts := testOptions()
	opts.Hooks = rec
	opts.ProgressEvery = 1

	res := run(t, graph.Cycle(4), opts, 3)
	assert.Equal(t, 2, res.Colors)
	assert.Equal(t, []int{3, 2, 1}, rec.targets)
	assert.Equal(t, []int{3, 2}, rec.found)
	assert.Equal(t, 1, rec.done)
	assert.Len(t, rec.gens, res.Generations+len(rec.found))
}

func TestWithHooks(t *testing.T) {
	s, err := New(graph.Cycle(5), testOptions())
	require.NoError(t, err)

	rec := &recorder{}
	traced := s.WithHooks(rec)
	_, err = traced.Run(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 1, rec.done)
	assert.Equal(t, observability.NoopSearchHooks{}, s.Options().Hooks, "original searcher keeps its hooks")
}

func TestDeterministicAcrossWorkerCounts(t *testing.T) {
	g := randomGraph(t, 99, 30, 0.5)
	kUsed, _ := greedy.DSATUR(g)

	trace := func(workers int) (*Result, *recorder) {
		rec := &recorder{}
		opts := testOptions()
		opts.MaxGenerations = 300
		opts.Seed = 2024
		opts.Workers = workers
		opts.ProgressEvery = 1
		opts.Hooks = rec
		return run(t, g, opts, kUsed-1), rec
	}

	base, baseRec := trace(1)
	for _, workers := range []int{1, 2, 8} {
		res, rec := trace(workers)
		assert.Equal(t, base.Colors, res.Colors, "workers=%d", workers)
		assert.Equal(t, base.Generations, res.Generations, "workers=%d", workers)
		if diff := cmp.Diff(base.Targets, res.Targets, cmpopts.IgnoreFields(TargetStats{}, "Duration")); diff != "" {
			t.Errorf("workers=%d targets mismatch (-want +got):\n%s", workers, diff)
		}
		if diff := cmp.Diff(baseRec.gens, rec.gens); diff != "" {
			t.Errorf("workers=%d generation trace mismatch (-want +got):\n%s", workers, diff)
		}
		if base.Best != nil {
			require.NotNil(t, res.Best)
			assert.Equal(t, base.Best.Solution(), res.Best.Solution())
		}
	}
}

func TestRandomSeedIsReported(t *testing.T) {
	opts := testOptions()
	opts.Seed = 0
	res := run(t, graph.Cycle(4), opts, 2)
	assert.NotZero(t, res.Seed)

	opts.Seed = res.Seed
	again := run(t, graph.Cycle(4), opts, 2)
	assert.Equal(t, res.Generations, again.Generations)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s, err := New(graph.Cycle(5), testOptions())
	require.NoError(t, err)
	res, err := s.Run(ctx, 2)
	assert.ErrorIs(t, err, context.Canceled)
	require.NotNil(t, res)
	assert.Equal(t, 0, res.Generations)
}

func TestSearchConvenience(t *testing.T) {
	colors, err := Search(context.Background(), graph.Complete(4), 10, 3, StandardParameters(), 0)
	require.NoError(t, err)
	assert.Equal(t, 4, colors)

	_, err = Search(context.Background(), graph.Complete(4), 10, 3, Parameters{Lambda: -1}, 0)
	assert.Error(t, err)
}

func TestStepAcceptance(t *testing.T) {
	g := graph.Cycle(6)
	opts := testOptions()
	opts.Pollinator = "all-critical"
	opts.Parameters = Parameters{Lambda: 1.5, SwitchP: 0, LifetimeLimit: 30}
	s, err := New(g, opts)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(1, 1))

	// Two conflicts at 0-1 and 5-0; all-critical repairs both.
	x, err := coloring.FromSolution(g, []int{1, 1, 2, 1, 2, 1}, 0)
	require.NoError(t, err)
	x.SetLifetime(7)
	other, err := coloring.FromSolution(g, []int{1, 2, 1, 2, 1, 2}, 1)
	require.NoError(t, err)
	pop := []*coloring.Coloring{x, other}

	require.NoError(t, s.step(pop, 0, rng, other.Clone(), 2))
	assert.Equal(t, []int{2, 1, 2, 1, 2, 1}, pop[0].Solution())
	assert.Equal(t, 0, pop[0].Lifetime(), "strict improvement resets lifetime")

	// A proper coloring has no critical vertices, so the candidate ties.
	require.NoError(t, s.step(pop, 1, rng, pop[0].Clone(), 2))
	assert.Equal(t, 1, pop[1].Lifetime(), "a tie counts as stagnation")
	assert.Equal(t, 1, pop[1].ID())
}

func TestStepReinitialization(t *testing.T) {
	g := graph.Cycle(6)
	opts := testOptions()
	opts.Parameters = Parameters{Lambda: 1.5, SwitchP: 1, LifetimeLimit: 3}
	s, err := New(g, opts)
	require.NoError(t, err)
	rng := rand.New(rand.NewPCG(2, 2))

	stale, err := coloring.FromSolution(g, []int{1, 1, 1, 1, 1, 1}, 0)
	require.NoError(t, err)
	stale.SetLifetime(4)
	best, err := coloring.FromSolution(g, []int{1, 1, 2, 1, 2, 1}, 1)
	require.NoError(t, err)
	best.SetLifetime(50)
	pop := []*coloring.Coloring{stale, best}
	frozen := best.Clone()

	require.NoError(t, s.step(pop, 0, rng, frozen, 2))
	assert.NotSame(t, stale, pop[0])
	assert.Equal(t, 0, pop[0].Lifetime())
	assert.Equal(t, 0, pop[0].ID())
	assert.True(t, pop[0].Consistent(g))

	// The best slot is exempt even when stale; it runs the local operator.
	require.NoError(t, s.step(pop, 1, rng, frozen, 2))
	assert.Equal(t, 1, pop[1].ID())
	assert.Equal(t, 0, pop[1].Lifetime(), "local repair improved the best slot")
}

func TestReduceTieBreak(t *testing.T) {
	g := graph.Cycle(4)
	mk := func(id int, sol ...int) *coloring.Coloring {
		c, err := coloring.FromSolution(g, sol, id)
		require.NoError(t, err)
		return c
	}
	pop := []*coloring.Coloring{
		mk(0, 1, 1, 1, 1),
		mk(1, 1, 1, 2, 2),
		mk(2, 1, 2, 2, 1),
		mk(3, 1, 1, 1, 1),
		mk(4, 2, 2, 1, 1),
	}
	for _, workers := range []int{1, 2, 3, 8} {
		opts := testOptions()
		opts.Workers = workers
		s, err := New(g, opts)
		require.NoError(t, err)
		assert.Equal(t, 1, s.reduce(pop), "workers=%d", workers)
	}
}

func TestSlotRNGIndependent(t *testing.T) {
	a := slotRNG(7, 5, 0).Uint64()
	assert.Equal(t, a, slotRNG(7, 5, 0).Uint64())
	assert.NotEqual(t, a, slotRNG(7, 5, 1).Uint64())
	assert.NotEqual(t, a, slotRNG(7, 4, 0).Uint64())
	assert.NotEqual(t, a, slotRNG(8, 5, 0).Uint64())
}
