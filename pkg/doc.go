// Package pkg provides the libraries behind dfpa, a graph coloring tool based
// on a discrete flower pollination search.
//
// # Overview
//
// dfpa approximates the chromatic number of an undirected graph. A greedy
// constructor gives an upper bound; the search then evolves a population of
// colorings with one color fewer, and repeats with fewer colors each time a
// proper coloring appears.
//
// # Architecture
//
//	DIMACS .col file
//	         ↓
//	    [graph] (adjacency lists, gonum bounds)
//	         ↓
//	    [greedy] (DSATUR bound, initial coloring)
//	         ↓
//	    [search] (population loop; [pollinate] operators, [levy] steps)
//	         ↓
//	    color count + [coloring] → [render] (DOT/SVG/PNG)
//
// [bench] runs suites of instances with known chromatic numbers on top of
// [search], caching finished runs in [cache].
//
// # Quick Start
//
//	g, _ := graph.ReadFile("graphs/DSJC125.1.col", graph.Standard)
//	k, _ := greedy.DSATURIncremental(g)
//
//	s, _ := search.New(g, search.Options{Seed: 42})
//	res, _ := s.Run(context.Background(), k-1)
//	fmt.Println(res.Colors)
//
// # Main Packages
//
// [coloring] - Candidate solutions with per-vertex conflict counts and
// incremental bookkeeping after recoloring.
//
// [pollinate] - Global and local pollination operators in four variants
// that differ in which critical vertices they recolor first.
//
// [observability] - Hooks through which the search, cache and benchmark
// runner report progress without logging themselves.
//
// [errors] - Coded errors shared by every package.
//
// # Testing
//
//	go test ./pkg/...                    # All tests
//	go test ./pkg/search/...             # Specific package
//	go test -run Example ./pkg/...       # Examples only
//
// [bench]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/bench
// [cache]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/cache
// [coloring]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/coloring
// [errors]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/errors
// [graph]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/graph
// [greedy]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/greedy
// [levy]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/levy
// [observability]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/observability
// [pollinate]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/pollinate
// [render]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/render
// [search]: https://pkg.go.dev/github.com/matzehuels/dfpa/pkg/search
package pkg
