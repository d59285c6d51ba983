// Package pollinate implements the search operators that turn one or two
// colorings into a new candidate.
//
// Every [Pollinator] shares the same global (biotic) operator, which copies a
// Levy-sized random subset of positions from the best coloring. Variants
// differ in their local (abiotic) operator, which recolors a subset of the
// critical vertices (those with at least one conflict):
//
//	all-critical   every critical vertex
//	random         a Levy-sized random subset
//	worst-first    a Levy-sized subset, highest conflict counts first
//	mildest-first  a Levy-sized subset, lowest nonzero conflict counts first
//
// Operators never modify their inputs. They clone, recolor, and repair the
// clone's conflict counts incrementally against the input.
package pollinate

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sort"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/graph"
)

// Pollinator produces candidate colorings.
//
// rng is owned by the calling goroutine. Errors come only from the Levy
// sampler hitting its attempt cap.
type Pollinator interface {
	// Name returns the registry name.
	Name() string
	// Global copies colors from best into a clone of other.
	Global(rng *rand.Rand, g *graph.Graph, best, other *coloring.Coloring, lambda float64) (*coloring.Coloring, error)
	// Local recolors critical vertices of a clone of x using colors 1..k.
	Local(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64) (*coloring.Coloring, error)
}

// Default is the variant used when none is configured.
const Default = "all-critical"

var registry = map[string]Pollinator{
	"all-critical":  AllCritical{},
	"random":        Random{},
	"worst-first":   WorstFirst{},
	"mildest-first": MildestFirst{},
}

// Lookup returns the pollinator registered under name.
func Lookup(name string) (Pollinator, error) {
	p, ok := registry[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeInvalidParameters,
			"unknown pollinator %q (valid: %v)", name, Names())
	}
	return p, nil
}

// Names returns the registered pollinator names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// MustLookup is like Lookup but panics on an unknown name.
func MustLookup(name string) Pollinator {
	p, err := Lookup(name)
	if err != nil {
		panic(fmt.Sprintf("pollinate: %v", err))
	}
	return p
}

func sortedByConflicts(x *coloring.Coloring, vs []int, descending bool) []int {
	out := slices.Clone(vs)
	slices.SortStableFunc(out, func(a, b int) int {
		ca, cb := x.Conflicts(a), x.Conflicts(b)
		if ca != cb {
			if descending {
				return cb - ca
			}
			return ca - cb
		}
		return a - b
	})
	return out
}
