package pollinate

import (
	"math/rand/v2"

	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/graph"
	"github.com/matzehuels/dfpa/pkg/levy"
)

// global is the biotic operator shared by every variant.
type global struct{}

// Global clones other, draws a Levy step count below n, and overwrites that
// many distinct random positions with best's colors.
func (global) Global(rng *rand.Rand, g *graph.Graph, best, other *coloring.Coloring, lambda float64) (*coloring.Coloring, error) {
	child := other.Clone()
	n := other.Len()
	if n == 0 {
		return child, nil
	}
	steps, err := levy.Adjusted(rng, n, lambda)
	if err != nil {
		return nil, err
	}
	idx := samplePositions(rng, n, steps)
	for _, v := range idx {
		child.SetColor(v, best.Color(v))
	}
	child.UpdateAfterRecolorSet(idx, other, g)
	return child, nil
}

// samplePositions draws m distinct values from [0, n) with a partial
// Fisher-Yates shuffle.
func samplePositions(rng *rand.Rand, n, m int) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	return partialShuffle(rng, perm, m)
}

// partialShuffle moves m uniformly chosen elements to the front of vs and
// returns them. vs is modified.
func partialShuffle(rng *rand.Rand, vs []int, m int) []int {
	m = min(m, len(vs))
	for i := 0; i < m; i++ {
		j := i + rng.IntN(len(vs)-i)
		vs[i], vs[j] = vs[j], vs[i]
	}
	return vs[:m]
}
