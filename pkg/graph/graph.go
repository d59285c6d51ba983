package graph

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrSelfLoop is returned by [FromEdges] for an edge whose endpoints are equal.
	ErrSelfLoop = errors.New("self-loop")

	// ErrVertexOutOfRange is returned by [FromEdges] when an endpoint is not in [0, n).
	ErrVertexOutOfRange = errors.New("vertex out of range")

	// ErrNegativeSize is returned when a graph is requested with fewer than zero vertices.
	ErrNegativeSize = errors.New("negative vertex count")
)

// Mode selects how edges are recorded.
type Mode int

const (
	// Standard records every edge in both directions.
	Standard Mode = iota
	// Simple keeps only the first-seen direction of each unordered pair.
	Simple
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Standard:
		return "standard"
	case Simple:
		return "simple"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Edge is an unordered pair of 0-based vertex ids.
type Edge struct {
	U, V int
}

// Graph is an immutable adjacency-list graph over vertices 0..n-1.
//
// The zero value is an empty graph. Graph is safe for concurrent reads.
type Graph struct {
	adj  [][]int
	mode Mode
}

// FromEdges builds a graph with n vertices. Duplicate edges are collapsed;
// in [Simple] mode an edge is dropped when its reverse was already recorded.
func FromEdges(n int, edges []Edge, mode Mode) (*Graph, error) {
	if n < 0 {
		return nil, ErrNegativeSize
	}
	sets := make([]map[int]struct{}, n)
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for _, e := range edges {
		if e.U < 0 || e.U >= n || e.V < 0 || e.V >= n {
			return nil, fmt.Errorf("edge %d-%d with %d vertices: %w", e.U, e.V, n, ErrVertexOutOfRange)
		}
		if e.U == e.V {
			return nil, fmt.Errorf("edge %d-%d: %w", e.U, e.V, ErrSelfLoop)
		}
		addEdge(sets, e.U, e.V, mode)
	}
	return fromSets(sets, mode), nil
}

func addEdge(sets []map[int]struct{}, u, v int, mode Mode) {
	if mode == Simple {
		if _, ok := sets[v][u]; !ok {
			sets[u][v] = struct{}{}
		}
		return
	}
	sets[u][v] = struct{}{}
	sets[v][u] = struct{}{}
}

func fromSets(sets []map[int]struct{}, mode Mode) *Graph {
	adj := make([][]int, len(sets))
	for v, set := range sets {
		nbrs := make([]int, 0, len(set))
		for u := range set {
			nbrs = append(nbrs, u)
		}
		slices.Sort(nbrs)
		adj[v] = nbrs
	}
	return &Graph{adj: adj, mode: mode}
}

// Len returns the number of vertices.
func (g *Graph) Len() int { return len(g.adj) }

// Neighbors returns the neighbor ids of v in ascending order.
// The returned slice is shared with the graph and must not be modified.
func (g *Graph) Neighbors(v int) []int { return g.adj[v] }

// Degree returns the length of v's neighbor list.
func (g *Graph) Degree(v int) int { return len(g.adj[v]) }

// Mode returns the construction mode.
func (g *Graph) Mode() Mode { return g.mode }

// MaxDegree returns the largest neighbor-list length, or 0 for an empty graph.
func (g *Graph) MaxDegree() int {
	maxDeg := 0
	for _, nbrs := range g.adj {
		maxDeg = max(maxDeg, len(nbrs))
	}
	return maxDeg
}

// EdgeCount returns the number of distinct undirected edges.
func (g *Graph) EdgeCount() int {
	total := 0
	for _, nbrs := range g.adj {
		total += len(nbrs)
	}
	if g.mode == Simple {
		return total
	}
	return total / 2
}

// Edges returns every undirected edge once, with U < V, ordered by U then V.
func (g *Graph) Edges() []Edge {
	seen := make(map[Edge]struct{})
	var out []Edge
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			e := Edge{U: min(u, v), V: max(u, v)}
			if _, ok := seen[e]; ok {
				continue
			}
			seen[e] = struct{}{}
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b Edge) int {
		if a.U != b.U {
			return a.U - b.U
		}
		return a.V - b.V
	})
	return out
}

// Symmetric reports whether every edge is recorded in both directions.
func (g *Graph) Symmetric() bool {
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			if _, found := slices.BinarySearch(g.adj[v], u); !found {
				return false
			}
		}
	}
	return true
}

// Symmetrize returns a [Standard] graph with the same undirected edges.
// A standard graph is returned as is.
func (g *Graph) Symmetrize() *Graph {
	if g.mode == Standard {
		return g
	}
	sets := make([]map[int]struct{}, len(g.adj))
	for i := range sets {
		sets[i] = make(map[int]struct{})
	}
	for u, nbrs := range g.adj {
		for _, v := range nbrs {
			addEdge(sets, u, v, Standard)
		}
	}
	return fromSets(sets, Standard)
}
