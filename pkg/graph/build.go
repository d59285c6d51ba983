package graph

// Cycle returns the standard cycle graph C_n. For n < 3 it returns the path
// on n vertices, since a cycle would need a self-loop or a doubled edge.
func Cycle(n int) *Graph {
	edges := make([]Edge, 0, n)
	for i := 0; i+1 < n; i++ {
		edges = append(edges, Edge{U: i, V: i + 1})
	}
	if n >= 3 {
		edges = append(edges, Edge{U: n - 1, V: 0})
	}
	return mustBuild(max(n, 0), edges)
}

// Complete returns the standard complete graph K_n.
func Complete(n int) *Graph {
	var edges []Edge
	for u := 0; u < n; u++ {
		for v := u + 1; v < n; v++ {
			edges = append(edges, Edge{U: u, V: v})
		}
	}
	return mustBuild(max(n, 0), edges)
}

// CompleteBipartite returns K_{a,b}: vertices 0..a-1 on one side and
// a..a+b-1 on the other.
func CompleteBipartite(a, b int) *Graph {
	a, b = max(a, 0), max(b, 0)
	edges := make([]Edge, 0, a*b)
	for u := 0; u < a; u++ {
		for v := a; v < a+b; v++ {
			edges = append(edges, Edge{U: u, V: v})
		}
	}
	return mustBuild(a+b, edges)
}

// mustBuild is only called with edge lists that are valid by construction.
func mustBuild(n int, edges []Edge) *Graph {
	g, err := FromEdges(n, edges, Standard)
	if err != nil {
		panic(err)
	}
	return g
}
