package search

import (
	"runtime"

	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/observability"
	"github.com/matzehuels/dfpa/pkg/pollinate"
)

// Defaults applied by [Options.WithDefaults].
const (
	DefaultPopulationSize = 20
	DefaultMaxGenerations = 50000
	DefaultProgressEvery  = 1000
)

// Options configures a [Searcher].
type Options struct {
	Parameters     Parameters                // Search dynamics (default: StandardParameters when all fields are zero)
	PopulationSize int                       // Individuals per target k (default: 20)
	MaxGenerations int                       // Generation budget per target k (default: 50000)
	Stop           int                       // Return this count once a proper coloring with it is found (0: none)
	Seed           uint64                    // Base seed; 0 draws a random one
	Workers        int                       // Concurrent slot updates (default: GOMAXPROCS)
	Pollinator     string                    // Registry name (default: pollinate.Default)
	ProgressEvery  int                       // Generations between progress hooks (default: 1000)
	Hooks          observability.SearchHooks // Event sink (default: the global registry)
}

// DefaultOptions returns options with every field at its default.
func DefaultOptions() Options {
	return Options{}.WithDefaults()
}

// WithDefaults returns a copy of Options with zero values replaced by defaults.
// An all-zero Parameters is treated as unset; callers that take parameters
// from users should validate them first with [Parameters.Validate].
func (o Options) WithDefaults() Options {
	opts := o
	if opts.Parameters == (Parameters{}) {
		opts.Parameters = StandardParameters()
	}
	if opts.PopulationSize <= 0 {
		opts.PopulationSize = DefaultPopulationSize
	}
	if opts.MaxGenerations <= 0 {
		opts.MaxGenerations = DefaultMaxGenerations
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	if opts.Pollinator == "" {
		opts.Pollinator = pollinate.Default
	}
	if opts.ProgressEvery <= 0 {
		opts.ProgressEvery = DefaultProgressEvery
	}
	if opts.Hooks == nil {
		opts.Hooks = observability.Search()
	}
	return opts
}

// Validate checks options after defaults have been applied.
func (o Options) Validate() error {
	if err := o.Parameters.Validate(); err != nil {
		return err
	}
	if o.Stop < 0 {
		return errors.New(errors.ErrCodeInvalidParameters, "stop must be non-negative, got %d", o.Stop)
	}
	if _, err := pollinate.Lookup(o.Pollinator); err != nil {
		return err
	}
	return nil
}
