package graph

import (
	"context"

	"gonum.org/v1/gonum/graph/coloring"
	"gonum.org/v1/gonum/graph/simple"
	"gonum.org/v1/gonum/graph/topo"
)

// Undirected converts g to a gonum undirected graph. Node ids equal vertex
// ids. Simple-mode graphs convert the same way because gonum edges are
// unordered.
func (g *Graph) Undirected() *simple.UndirectedGraph {
	ug := simple.NewUndirectedGraph()
	for v := range g.adj {
		ug.AddNode(simple.Node(v))
	}
	for _, e := range g.Edges() {
		ug.SetEdge(simple.Edge{F: simple.Node(e.U), T: simple.Node(e.V)})
	}
	return ug
}

// CliqueBound returns the size of the largest maximal clique, a lower bound
// on the chromatic number. Runtime is exponential in the worst case.
func (g *Graph) CliqueBound() int {
	if g.Len() == 0 {
		return 0
	}
	best := 0
	for _, clique := range topo.BronKerbosch(g.Undirected()) {
		best = max(best, len(clique))
	}
	return best
}

// ExactChromatic computes the chromatic number with branch-and-bound DSATUR.
//
// When ctx is cancelled before the search finishes, the best upper bound
// found so far is returned together with the context's error.
func (g *Graph) ExactChromatic(ctx context.Context) (int, error) {
	k, _, err := coloring.DsaturExact(ctx, g.Undirected())
	return k, err
}

// RecursiveLargestFirst returns the color count of gonum's RLF heuristic.
// It serves as an independent upper bound next to the DSATUR constructors.
func (g *Graph) RecursiveLargestFirst() int {
	k, _ := coloring.RecursiveLargestFirst(g.Undirected())
	return k
}
