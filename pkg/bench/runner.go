package bench

import (
	"context"
	"encoding/json"
	"fmt"
	"slices"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/matzehuels/dfpa/pkg/cache"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/greedy"
	"github.com/matzehuels/dfpa/pkg/observability"
	"github.com/matzehuels/dfpa/pkg/search"
)

// TryResult is the outcome of one search run.
type TryResult struct {
	Colors      int           `json:"colors"`
	Generations int           `json:"generations"`
	Seed        uint64        `json:"seed"`
	Duration    time.Duration `json:"duration"`
	Cached      bool          `json:"cached"`
}

// InstanceResult aggregates the tries of one instance.
type InstanceResult struct {
	Name      string        `json:"name"`
	Vertices  int           `json:"vertices"`
	Edges     int           `json:"edges"`
	Chromatic int           `json:"chromatic"`
	Greedy    int           `json:"greedy"`
	InitialK  int           `json:"initial_k"`
	Tries     []TryResult   `json:"tries"`
	Best      int           `json:"best"`
	Average   float64       `json:"average"`
	AvgTime   time.Duration `json:"avg_time"`
}

// Colors returns the color count of every try in order.
func (r InstanceResult) Colors() []int {
	out := make([]int, len(r.Tries))
	for i, t := range r.Tries {
		out[i] = t.Colors
	}
	return out
}

// Report is the outcome of [Runner.RunSuite].
type Report struct {
	ID         string            `json:"id"`
	Suite      string            `json:"suite"`
	Pollinator string            `json:"pollinator"`
	Parameters search.Parameters `json:"parameters"`
	Started    time.Time         `json:"started"`
	Duration   time.Duration     `json:"duration"`
	Instances  []InstanceResult  `json:"instances"`

	// Total is the sum of per-instance averages. Lower is better; sweeps
	// compare settings by it.
	Total float64 `json:"total"`
}

// Runner executes suites with result caching.
//
// The Runner holds no per-suite state, so one value can serve several
// suites or sweeps in sequence.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Logger  *log.Logger
	Hooks   observability.BenchHooks
	Workers int // Search workers per run (0: GOMAXPROCS)
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  cache.WithHooks(c, "result"),
		Keyer:  keyer,
		Logger: logger,
		Hooks:  observability.Bench(),
	}
}

// RunSuite runs every instance of s Tries times.
//
// On cancellation the report holds the instances finished so far and the
// context error is returned with it.
func (r *Runner) RunSuite(ctx context.Context, s Suite) (*Report, error) {
	s = s.WithDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}

	report := &Report{
		ID:         uuid.NewString(),
		Suite:      s.Name,
		Pollinator: s.Pollinator,
		Parameters: s.Parameters,
		Started:    time.Now(),
	}
	defer func() { report.Duration = time.Since(report.Started) }()

	r.Logger.Info("running suite",
		"suite", s.Name,
		"run", report.ID,
		"instances", len(s.Instances),
		"tries", s.Tries,
		"pollinator", s.Pollinator)

	for _, inst := range s.Instances {
		res, err := r.runInstance(ctx, s, inst)
		if err != nil {
			return report, fmt.Errorf("instance %s: %w", inst.Name, err)
		}
		report.Instances = append(report.Instances, *res)
		report.Total += res.Average
	}
	return report, nil
}

func (r *Runner) runInstance(ctx context.Context, s Suite, inst Instance) (*InstanceResult, error) {
	path := s.InstancePath(inst)
	g, err := graph.ReadFile(path, graph.Standard)
	if err != nil {
		return nil, err
	}
	graphHash, err := cache.HashFile(path)
	if err != nil {
		return nil, err
	}

	construct, _ := greedy.Lookup(s.Greedy)
	greedyK, _ := construct(g)
	initialK := max(greedyK-1, 1)

	res := &InstanceResult{
		Name:      inst.Name,
		Vertices:  g.Len(),
		Edges:     g.EdgeCount(),
		Chromatic: inst.Chromatic,
		Greedy:    greedyK,
		InitialK:  initialK,
	}
	r.Logger.Info("instance",
		"name", inst.Name,
		"vertices", res.Vertices,
		"max_degree", g.MaxDegree(),
		"greedy", greedyK,
		"chromatic", inst.Chromatic)

	var total time.Duration
	for try := range s.Tries {
		t, err := r.runTry(ctx, s, inst, g, graphHash, initialK, try)
		if err != nil {
			return nil, err
		}
		res.Tries = append(res.Tries, t)
		total += t.Duration
	}

	colors := res.Colors()
	res.Best = slices.Min(colors)
	sum := 0
	for _, c := range colors {
		sum += c
	}
	res.Average = float64(sum) / float64(len(colors))
	res.AvgTime = total / time.Duration(len(colors))

	r.Logger.Info("instance done",
		"name", inst.Name,
		"best", res.Best,
		"average", res.Average,
		"avg_time", res.AvgTime.Round(time.Millisecond))
	return res, nil
}

func (r *Runner) runTry(ctx context.Context, s Suite, inst Instance, g *graph.Graph, graphHash string, initialK, try int) (TryResult, error) {
	if err := ctx.Err(); err != nil {
		return TryResult{}, err
	}

	var seed uint64
	if s.Seed != 0 {
		seed = s.Seed + uint64(try)
	}
	key := r.Keyer.ResultKey(graphHash, cache.ResultKeyOpts{
		Greedy:         s.Greedy,
		Pollinator:     s.Pollinator,
		Lambda:         s.Parameters.Lambda,
		SwitchP:        s.Parameters.SwitchP,
		LifetimeLimit:  s.Parameters.LifetimeLimit,
		PopulationSize: s.PopulationSize,
		MaxGenerations: s.MaxGenerations,
		Stop:           inst.Chromatic,
		Seed:           seed,
		Try:            try,
	})

	r.Hooks.OnRunStart(ctx, inst.Name, try)

	if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
		var t TryResult
		if err := json.Unmarshal(data, &t); err == nil {
			t.Cached = true
			r.Logger.Debug("cached try", "name", inst.Name, "try", try+1, "colors", t.Colors)
			r.Hooks.OnRunComplete(ctx, inst.Name, try, t.Colors, true, t.Duration, nil)
			return t, nil
		}
	}

	searcher, err := search.New(g, search.Options{
		Parameters:     s.Parameters,
		PopulationSize: s.PopulationSize,
		MaxGenerations: s.MaxGenerations,
		Stop:           inst.Chromatic,
		Seed:           seed,
		Workers:        r.Workers,
		Pollinator:     s.Pollinator,
	})
	if err != nil {
		return TryResult{}, err
	}
	out, err := searcher.Run(ctx, initialK)
	if err != nil {
		r.Hooks.OnRunComplete(ctx, inst.Name, try, out.Colors, false, out.Duration, err)
		return TryResult{}, err
	}

	t := TryResult{
		Colors:      out.Colors,
		Generations: out.Generations,
		Seed:        out.Seed,
		Duration:    out.Duration,
	}
	if data, err := json.Marshal(t); err == nil {
		if err := r.Cache.Set(ctx, key, data, 0); err != nil {
			r.Logger.Warn("cache write failed", "error", err)
		}
	}

	r.Logger.Debug("try",
		"name", inst.Name,
		"try", fmt.Sprintf("%d/%d", try+1, s.Tries),
		"colors", t.Colors,
		"generations", t.Generations,
		"duration", t.Duration.Round(time.Millisecond))
	r.Hooks.OnRunComplete(ctx, inst.Name, try, t.Colors, false, t.Duration, nil)
	return t, nil
}
