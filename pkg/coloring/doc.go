// Package coloring holds a single candidate vertex coloring together with the
// per-vertex conflict counts that the search operators keep up to date
// incrementally.
//
// A [Coloring] maintains these invariants between operator applications:
//
//   - Conflicts(v) equals the number of neighbors of v sharing v's color
//   - TotalConflicts() equals half the sum of all per-vertex counts
//
// Color 0 means "uncolored" and never conflicts; it only appears in colorings
// under greedy construction. Search colorings use colors 1..k.
//
// Operators never mutate a coloring in place. They [Coloring.Clone] the
// parent, change some colors with [Coloring.SetColor], and then call
// [Coloring.UpdateAfterRecolor] or [Coloring.UpdateAfterRecolorSet] with the
// parent as the previous snapshot. Both updates touch only the changed
// vertices and their neighbors.
package coloring
