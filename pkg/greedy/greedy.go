// Package greedy builds initial proper colorings.
//
// [DSATUR] and [DSATURIncremental] follow Brélaz's saturation-degree order;
// [Sequential] colors vertices in index order. Every constructor returns the
// number of colors used and a proper coloring with id 0. The result never
// uses more than MaxDegree()+1 colors.
//
// The strict variant recomputes every saturation on every step. The
// incremental variant caches one value per vertex, starting at 0, and
// refreshes only the uncolored neighbors of the vertex colored last. A
// refresh counts distinct neighbor colors with "uncolored" counted as a
// color of its own, so a cached value is one above the strict saturation
// while the vertex still has uncolored neighbors. The visit orders differ
// when a vertex whose neighbors are all colored ties with one that still has
// open neighbors: the strict variant takes the former first, the
// incremental one defers it. Such a vertex affects no other choice and its
// color is already fixed, so both variants return the same coloring.
//
// Saturation ties go to the vertex with the most uncolored neighbors and
// then to the highest index.
package greedy

import (
	"github.com/matzehuels/dfpa/pkg/coloring"
	"github.com/matzehuels/dfpa/pkg/graph"
)

// Constructor is the signature shared by every greedy constructor.
type Constructor func(g *graph.Graph) (int, *coloring.Coloring)

// Variants maps constructor names to implementations, in display order.
var Variants = []struct {
	Name  string
	Build Constructor
}{
	{"dsatur", DSATUR},
	{"dsatur-incremental", DSATURIncremental},
	{"sequential", Sequential},
}

// Lookup returns the constructor registered under name.
func Lookup(name string) (Constructor, bool) {
	for _, v := range Variants {
		if v.Name == name {
			return v.Build, true
		}
	}
	return nil, false
}

// DSATUR colors g by maximum saturation, recomputing every saturation on
// each step.
func DSATUR(g *graph.Graph) (int, *coloring.Coloring) {
	colors, _ := dsatur(g, false)
	return finish(g, colors)
}

// DSATURIncremental is DSATUR with cached saturation values. After a vertex
// is colored only its uncolored neighbors are refreshed.
func DSATURIncremental(g *graph.Graph) (int, *coloring.Coloring) {
	colors, _ := dsatur(g, true)
	return finish(g, colors)
}

// dsatur returns the colors and the order in which vertices were colored.
func dsatur(g *graph.Graph, cached bool) (colors, order []int) {
	n := g.Len()
	colors = make([]int, n)
	order = make([]int, 0, n)
	sc := newScratch(g)

	satOf := func(u int) int { return sc.saturation(g, colors, u) }
	var sat []int
	if cached {
		sat = make([]int, n)
		satOf = func(u int) int { return sat[u] }
	}

	for len(order) < n {
		v := sc.pick(g, colors, satOf)
		colors[v] = sc.smallestFree(g, colors, v)
		order = append(order, v)
		if !cached {
			continue
		}
		for _, u := range g.Neighbors(v) {
			if colors[u] == 0 {
				sat[u] = sc.openSaturation(g, colors, u)
			}
		}
	}
	return colors, order
}

// Sequential assigns each vertex, in index order, the smallest color unused
// by its already colored neighbors.
func Sequential(g *graph.Graph) (int, *coloring.Coloring) {
	colors := make([]int, g.Len())
	sc := newScratch(g)
	for v := range colors {
		colors[v] = sc.smallestFree(g, colors, v)
	}
	return finish(g, colors)
}

func finish(g *graph.Graph, colors []int) (int, *coloring.Coloring) {
	c, err := coloring.FromSolution(g, colors, 0)
	if err != nil {
		// colors has one non-negative entry per vertex by construction.
		panic(err)
	}
	return c.K(), c
}

// scratch holds a color-mark buffer sized for the largest possible color.
type scratch struct {
	mark  []int
	epoch int
}

func newScratch(g *graph.Graph) *scratch {
	return &scratch{mark: make([]int, g.MaxDegree()+2)}
}

func (s *scratch) next() int {
	s.epoch++
	return s.epoch
}

// saturation counts distinct colors among the colored neighbors of v.
func (s *scratch) saturation(g *graph.Graph, colors []int, v int) int {
	e := s.next()
	n := 0
	for _, u := range g.Neighbors(v) {
		if c := colors[u]; c != 0 && s.mark[c] != e {
			s.mark[c] = e
			n++
		}
	}
	return n
}

// openSaturation is saturation with 0 (uncolored) counted as one more color.
func (s *scratch) openSaturation(g *graph.Graph, colors []int, v int) int {
	e := s.next()
	n := 0
	for _, u := range g.Neighbors(v) {
		if c := colors[u]; s.mark[c] != e {
			s.mark[c] = e
			n++
		}
	}
	return n
}

// smallestFree returns the lowest positive color no neighbor of v uses.
func (s *scratch) smallestFree(g *graph.Graph, colors []int, v int) int {
	e := s.next()
	for _, u := range g.Neighbors(v) {
		if c := colors[u]; c != 0 && c < len(s.mark) {
			s.mark[c] = e
		}
	}
	for c := 1; c < len(s.mark); c++ {
		if s.mark[c] != e {
			return c
		}
	}
	return len(s.mark)
}

// pick returns the uncolored vertex with the highest sat value. Ties go to
// the most uncolored neighbors, then to the highest index.
func (s *scratch) pick(g *graph.Graph, colors []int, sat func(int) int) int {
	best, bestSat, bestFree := -1, -1, -1
	for v, c := range colors {
		if c != 0 {
			continue
		}
		sv := sat(v)
		if sv < bestSat {
			continue
		}
		free := uncoloredNeighbors(g, colors, v)
		if sv > bestSat || free >= bestFree {
			best, bestSat, bestFree = v, sv, free
		}
	}
	return best
}

func uncoloredNeighbors(g *graph.Graph, colors []int, v int) int {
	n := 0
	for _, u := range g.Neighbors(v) {
		if colors[u] == 0 {
			n++
		}
	}
	return n
}
