package coloring

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/dfpa/pkg/graph"
)

// star returns a hub 0 joined to leaves 1..leaves.
func star(t *testing.T, leaves int) *graph.Graph {
	t.Helper()
	edges := make([]graph.Edge, 0, leaves)
	for v := 1; v <= leaves; v++ {
		edges = append(edges, graph.Edge{U: 0, V: v})
	}
	g, err := graph.FromEdges(leaves+1, edges, graph.Standard)
	require.NoError(t, err)
	return g
}

func randomGraph(t *testing.T, rng *rand.Rand, n int, p float64) *graph.Graph {
	t.Helper()
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

func TestFromSolution(t *testing.T) {
	g := graph.Cycle(4)
	c, err := FromSolution(g, []int{1, 1, 2, 2}, 7)
	require.NoError(t, err)

	assert.Equal(t, 7, c.ID())
	assert.Equal(t, 2, c.TotalConflicts())
	assert.Equal(t, []int{1, 1, 1, 1}, []int{c.Conflicts(0), c.Conflicts(1), c.Conflicts(2), c.Conflicts(3)})
	assert.Equal(t, 2, c.K())
	assert.False(t, c.IsProper())
	assert.Equal(t, []int{0, 1, 2, 3}, c.Critical())

	_, err = FromSolution(g, []int{1, 2}, 0)
	assert.Error(t, err)
	_, err = FromSolution(g, []int{1, 2, -1, 2}, 0)
	assert.Error(t, err)
}

func TestEmpty(t *testing.T) {
	g := graph.Complete(3)
	c := Empty(3, 0)
	assert.Equal(t, 0, c.TotalConflicts())
	assert.Equal(t, 0, c.K())
	assert.False(t, c.IsProper(), "uncolored vertices are not a proper coloring")
	assert.True(t, c.Consistent(g))
}

func TestNewColorsInRange(t *testing.T) {
	g := graph.Complete(10)
	rng := rand.New(rand.NewPCG(1, 2))
	c := New(g, 3, 4, rng)
	for v := 0; v < c.Len(); v++ {
		assert.GreaterOrEqual(t, c.Color(v), 1)
		assert.LessOrEqual(t, c.Color(v), 3)
	}
	assert.True(t, c.Consistent(g))
	assert.Equal(t, 4, c.ID())
}

func TestPopulate(t *testing.T) {
	g := graph.Cycle(6)
	rngs := make([]*rand.Rand, 5)
	for i := range rngs {
		rngs[i] = rand.New(rand.NewPCG(uint64(i), 99))
	}
	pop := Populate(g, 2, rngs)
	require.Len(t, pop, 5)
	for i, c := range pop {
		assert.Equal(t, i, c.ID())
		assert.True(t, c.Consistent(g))
	}
}

func TestCloneIsDeep(t *testing.T) {
	g := graph.Cycle(3)
	c, err := FromSolution(g, []int{1, 2, 3}, 1)
	require.NoError(t, err)
	c.SetLifetime(5)

	d := c.Clone()
	d.SetColor(0, 2)
	d.UpdateAfterRecolor(0, c, g)

	assert.Equal(t, 1, c.Color(0))
	assert.Equal(t, 0, c.TotalConflicts())
	assert.Equal(t, 1, d.TotalConflicts())
	assert.Equal(t, 5, d.Lifetime())
	assert.Equal(t, c.ID(), d.ID())
}

func TestUpdateAfterRecolorResolvesConflicts(t *testing.T) {
	// Hub 0 shares color 1 with leaves 1 and 2; leaf 3 has color 2.
	g := star(t, 3)
	prev, err := FromSolution(g, []int{1, 1, 1, 2}, 0)
	require.NoError(t, err)
	require.Equal(t, 2, prev.Conflicts(0))
	require.Equal(t, 2, prev.TotalConflicts())

	next := prev.Clone()
	next.SetColor(0, 3)
	next.UpdateAfterRecolor(0, prev, g)

	assert.Equal(t, 0, next.Conflicts(0))
	assert.Equal(t, prev.Conflicts(1)-1, next.Conflicts(1))
	assert.Equal(t, prev.Conflicts(2)-1, next.Conflicts(2))
	assert.Equal(t, 0, next.Conflicts(3))
	assert.Equal(t, 0, next.TotalConflicts())
	assert.True(t, next.IsProper())
	assert.True(t, next.Consistent(g))
}

func TestUpdateAfterRecolorCreatesConflict(t *testing.T) {
	g := star(t, 3)
	prev, err := FromSolution(g, []int{1, 2, 3, 3}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, prev.TotalConflicts())

	next := prev.Clone()
	next.SetColor(0, 3)
	next.UpdateAfterRecolor(0, prev, g)

	assert.Equal(t, 2, next.Conflicts(0))
	assert.Equal(t, 2, next.TotalConflicts())
	assert.True(t, next.Consistent(g))
}

func TestUpdateAfterRecolorSetAdjacent(t *testing.T) {
	// Path 0-1-2-3, both middle vertices change together.
	g, err := graph.FromEdges(4, []graph.Edge{{U: 0, V: 1}, {U: 1, V: 2}, {U: 2, V: 3}}, graph.Standard)
	require.NoError(t, err)
	prev, err := FromSolution(g, []int{1, 2, 1, 2}, 0)
	require.NoError(t, err)
	require.Equal(t, 0, prev.TotalConflicts())

	tests := []struct {
		name   string
		colors [2]int
		total  int
	}{
		{"both take a shared new color", [2]int{3, 3}, 1},
		{"swap with each other", [2]int{1, 2}, 2},
		{"chain of conflicts", [2]int{2, 2}, 2},
		{"unchanged", [2]int{2, 1}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := prev.Clone()
			next.SetColor(1, tt.colors[0])
			next.SetColor(2, tt.colors[1])
			next.UpdateAfterRecolorSet([]int{1, 2, 1}, prev, g)
			assert.Equal(t, tt.total, next.TotalConflicts())
			assert.True(t, next.Consistent(g))
		})
	}
}

func TestUpdateAfterRecolorSetMatchesRecount(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 7))
	for trial := 0; trial < 50; trial++ {
		g := randomGraph(t, rng, 30, 0.3)
		k := 2 + rng.IntN(5)
		cur := New(g, k, 0, rng)

		for step := 0; step < 20; step++ {
			next := cur.Clone()
			changed := make([]int, 1+rng.IntN(10))
			for i := range changed {
				changed[i] = rng.IntN(g.Len())
				next.SetColor(changed[i], rng.IntN(k)+1)
			}
			next.UpdateAfterRecolorSet(changed, cur, g)

			want := next.Clone()
			want.Recount(g)
			for v := 0; v < g.Len(); v++ {
				require.Equal(t, want.Conflicts(v), next.Conflicts(v), "trial %d step %d vertex %d", trial, step, v)
			}
			require.Equal(t, want.TotalConflicts(), next.TotalConflicts())
			cur = next
		}
	}
}

func TestUpdateAfterRecolorMatchesRecount(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	g := randomGraph(t, rng, 40, 0.25)
	cur := New(g, 4, 0, rng)
	for step := 0; step < 500; step++ {
		v := rng.IntN(g.Len())
		next := cur.Clone()
		next.SetColor(v, rng.IntN(4)+1)
		next.UpdateAfterRecolor(v, cur, g)
		require.True(t, next.Consistent(g), "step %d", step)
		cur = next
	}
}

func TestUpdateAfterRecolorSetEmpty(t *testing.T) {
	g := graph.Cycle(5)
	prev, err := FromSolution(g, []int{1, 1, 2, 2, 3}, 0)
	require.NoError(t, err)
	next := prev.Clone()
	next.UpdateAfterRecolorSet(nil, prev, g)
	assert.Equal(t, prev.TotalConflicts(), next.TotalConflicts())
}

func TestConsistentDetectsDrift(t *testing.T) {
	g := graph.Cycle(4)
	c, err := FromSolution(g, []int{1, 2, 1, 2}, 0)
	require.NoError(t, err)
	require.True(t, c.Consistent(g))

	c.SetColor(0, 2)
	assert.False(t, c.Consistent(g))
	c.Recount(g)
	assert.True(t, c.Consistent(g))
	assert.Equal(t, 2, c.TotalConflicts())
}
