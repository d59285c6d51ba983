// Package graph provides the immutable adjacency structure that every dfpa
// search runs against, together with a reader for DIMACS ".col" files.
//
// # Overview
//
// A [Graph] has vertices 0..n-1. Each vertex stores a deduplicated,
// ascending list of neighbor ids. Graphs are built once (by [Parse],
// [ReadFile], [FromEdges] or one of the small constructors) and never change
// afterwards, so they can be shared freely between goroutines.
//
// # Modes
//
// Two construction modes exist:
//
//   - [Standard]: every edge u-v is recorded in both directions. Searches
//     and greedy constructors require this mode.
//   - [Simple]: only the first-seen direction of each unordered pair is
//     kept. Useful for counting edges of files that list both directions;
//     call [Graph.Symmetrize] to obtain a standard graph.
//
// # File Format
//
// The reader accepts the line-oriented DIMACS format:
//
//	c comment lines start with 'c'
//	p edge 5 5
//	e 1 2
//	e 2 3
//
// The third token of the first non-comment line is the vertex count. Every
// following line contributes one edge from its second and third tokens,
// which are 1-based vertex ids.
//
// # Bounds
//
// [Graph.CliqueBound] and [Graph.ExactChromatic] bridge to gonum's graph
// packages to obtain a lower bound and (for small graphs) the exact
// chromatic number. Both are used by the benchmark reports.
package graph
