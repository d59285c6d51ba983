package coloring

import (
	"fmt"
	"math/rand/v2"

	"github.com/matzehuels/dfpa/pkg/errors"
	"github.com/matzehuels/dfpa/pkg/graph"
)

// Coloring is one candidate solution.
//
// The id is assigned once when a population slot is created and survives
// Clone; it identifies the slot, never the value.
type Coloring struct {
	solution  []int
	conflicts []int
	total     int
	lifetime  int
	id        int
}

// New returns a coloring of g with every vertex drawn uniformly from 1..k.
func New(g *graph.Graph, k, id int, rng *rand.Rand) *Coloring {
	c := &Coloring{
		solution:  make([]int, g.Len()),
		conflicts: make([]int, g.Len()),
		id:        id,
	}
	for v := range c.solution {
		c.solution[v] = rng.IntN(k) + 1
	}
	c.Recount(g)
	return c
}

// FromSolution wraps a copy of solution and computes its conflicts.
// Colors must be non-negative and solution must have one entry per vertex.
func FromSolution(g *graph.Graph, solution []int, id int) (*Coloring, error) {
	if len(solution) != g.Len() {
		return nil, errors.New(errors.ErrCodeInvalidInput,
			"solution has %d entries, graph has %d vertices", len(solution), g.Len())
	}
	for v, col := range solution {
		if col < 0 {
			return nil, errors.New(errors.ErrCodeInvalidInput, "vertex %d has negative color %d", v, col)
		}
	}
	c := &Coloring{
		solution:  append([]int(nil), solution...),
		conflicts: make([]int, len(solution)),
		id:        id,
	}
	c.Recount(g)
	return c, nil
}

// Empty returns an all-uncolored coloring of n vertices.
func Empty(n, id int) *Coloring {
	return &Coloring{
		solution:  make([]int, n),
		conflicts: make([]int, n),
		id:        id,
	}
}

// Populate creates one random coloring per generator with colors in 1..k.
// Slot i uses rngs[i] and receives id i.
func Populate(g *graph.Graph, k int, rngs []*rand.Rand) []*Coloring {
	pop := make([]*Coloring, len(rngs))
	for i, rng := range rngs {
		pop[i] = New(g, k, i, rng)
	}
	return pop
}

// Clone returns a deep copy, including id and lifetime.
func (c *Coloring) Clone() *Coloring {
	return &Coloring{
		solution:  append([]int(nil), c.solution...),
		conflicts: append([]int(nil), c.conflicts...),
		total:     c.total,
		lifetime:  c.lifetime,
		id:        c.id,
	}
}

// Len returns the number of vertices.
func (c *Coloring) Len() int { return len(c.solution) }

// Color returns the color of v.
func (c *Coloring) Color(v int) int { return c.solution[v] }

// SetColor changes the color of v without touching the conflict counts.
// Callers must follow up with one of the update methods.
func (c *Coloring) SetColor(v, color int) { c.solution[v] = color }

// Solution returns a copy of the per-vertex colors.
func (c *Coloring) Solution() []int { return append([]int(nil), c.solution...) }

// Conflicts returns the number of neighbors of v sharing its color.
func (c *Coloring) Conflicts(v int) int { return c.conflicts[v] }

// TotalConflicts returns the number of conflicting edges.
func (c *Coloring) TotalConflicts() int { return c.total }

// Lifetime returns the number of generations since the last strict improvement.
func (c *Coloring) Lifetime() int { return c.lifetime }

// SetLifetime overwrites the lifetime counter.
func (c *Coloring) SetLifetime(n int) { c.lifetime = n }

// ID returns the slot identity.
func (c *Coloring) ID() int { return c.id }

// IsProper reports whether every vertex is colored and no edge conflicts.
func (c *Coloring) IsProper() bool {
	if c.total != 0 {
		return false
	}
	for _, col := range c.solution {
		if col == 0 {
			return false
		}
	}
	return true
}

// K returns the number of distinct colors in use, ignoring uncolored vertices.
// It may be smaller than the nominal k a coloring was drawn with.
func (c *Coloring) K() int {
	seen := make(map[int]struct{})
	for _, col := range c.solution {
		if col != 0 {
			seen[col] = struct{}{}
		}
	}
	return len(seen)
}

// Critical returns the vertices with a nonzero conflict count in ascending order.
func (c *Coloring) Critical() []int {
	var out []int
	for v, n := range c.conflicts {
		if n > 0 {
			out = append(out, v)
		}
	}
	return out
}

// String returns a short summary for logs.
func (c *Coloring) String() string {
	return fmt.Sprintf("coloring#%d{n=%d k=%d conflicts=%d lifetime=%d}",
		c.id, len(c.solution), c.K(), c.total, c.lifetime)
}
