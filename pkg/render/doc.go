// Package render draws colored graphs with Graphviz.
//
// [ToDOT] emits an undirected DOT graph in which every vertex is filled with
// the palette entry of its color and conflicting edges are drawn thick and
// red. [Render] lays the DOT source out in-process with go-graphviz and
// returns SVG or PNG bytes.
//
//	dot := render.ToDOT(g, c.Solution(), render.Options{})
//	svg, err := render.Render(ctx, dot, render.SVG)
//
// Layout uses the "neato" engine by default because coloring benchmarks have
// no natural hierarchy; large graphs (several hundred vertices) take a few
// seconds.
package render
