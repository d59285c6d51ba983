package pollinate

import (
	"math/rand/v2"
	"slices"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/levy"
)

// AllCritical recolors every critical vertex.
type AllCritical struct{ global }

// Random recolors a Levy-sized random subset of the critical vertices.
type Random struct{ global }

// WorstFirst recolors a Levy-sized prefix of the critical vertices ordered by
// descending conflict count.
type WorstFirst struct{ global }

// MildestFirst recolors a Levy-sized prefix of the critical vertices ordered
// by ascending conflict count.
type MildestFirst struct{ global }

func (AllCritical) Name() string  { return "all-critical" }
func (Random) Name() string       { return "random" }
func (WorstFirst) Name() string   { return "worst-first" }
func (MildestFirst) Name() string { return "mildest-first" }

// Local implements [Pollinator].
func (AllCritical) Local(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64) (*coloring.Coloring, error) {
	return recolor(g, x, k, x.Critical()), nil
}

// Local implements [Pollinator].
func (Random) Local(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64) (*coloring.Coloring, error) {
	critical := x.Critical()
	if len(critical) == 0 {
		return x.Clone(), nil
	}
	m, err := levy.Adjusted(rng, x.Len(), lambda)
	if err != nil {
		return nil, err
	}
	return recolor(g, x, k, partialShuffle(rng, critical, m)), nil
}

// Local implements [Pollinator].
func (WorstFirst) Local(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64) (*coloring.Coloring, error) {
	return localPrefix(rng, g, x, k, lambda, true)
}

// Local implements [Pollinator].
func (MildestFirst) Local(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64) (*coloring.Coloring, error) {
	return localPrefix(rng, g, x, k, lambda, false)
}

func localPrefix(rng *rand.Rand, g *graph.Graph, x *coloring.Coloring, k int, lambda float64, worst bool) (*coloring.Coloring, error) {
	critical := x.Critical()
	if len(critical) == 0 {
		return x.Clone(), nil
	}
	m, err := levy.Adjusted(rng, x.Len(), lambda)
	if err != nil {
		return nil, err
	}
	ordered := sortedByConflicts(x, critical, worst)
	return recolor(g, x, k, ordered[:min(m, len(ordered))]), nil
}

// recolor clones x and moves each selected vertex, in order, to its best
// color under the clone's current colors.
func recolor(g *graph.Graph, x *coloring.Coloring, k int, selected []int) *coloring.Coloring {
	child := x.Clone()
	if len(selected) == 0 {
		return child
	}
	counts := make([]int, k+1)
	for _, v := range selected {
		child.SetColor(v, bestColor(g, child, v, k, counts))
	}
	child.UpdateAfterRecolorSet(slices.Clone(selected), x, g)
	return child
}

// bestColor returns the color in 1..k with the fewest neighbors of v using
// it. The first color no neighbor uses wins outright; otherwise ties go to
// the lowest color. counts is scratch space of length k+1.
func bestColor(g *graph.Graph, c *coloring.Coloring, v, k int, counts []int) int {
	clear(counts)
	for _, u := range g.Neighbors(v) {
		if col := c.Color(u); col >= 1 && col <= k {
			counts[col]++
		}
	}
	best := 1
	for col := 1; col <= k; col++ {
		if counts[col] == 0 {
			return col
		}
		if counts[col] < counts[best] {
			best = col
		}
	}
	return best
}
