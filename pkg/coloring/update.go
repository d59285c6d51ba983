package coloring

import "github.com/matzehuels/dfpa/pkg/graph"

// =============================================================================
// Incremental Updates
// =============================================================================

// UpdateAfterRecolor repairs the conflict counts after c was cloned from prev
// and only vertex v changed color. It runs in O(deg v).
//
// The count of v is rebuilt from its neighbors. Each neighbor gains one
// conflict if it now matches v but did not before, and loses one in the
// opposite case.
func (c *Coloring) UpdateAfterRecolor(v int, prev *Coloring, g *graph.Graph) {
	old, cur := prev.solution[v], c.solution[v]
	count := 0
	for _, u := range g.Neighbors(v) {
		su := c.solution[u]
		wasSame := old != 0 && su == old
		isSame := cur != 0 && su == cur
		if isSame {
			count++
		}
		switch {
		case isSame && !wasSame:
			c.conflicts[u]++
		case wasSame && !isSame:
			c.conflicts[u]--
		}
	}
	// Neighbor adjustments mirror v's own change, so the edge total moves by
	// the difference in v's count alone.
	c.total = prev.total + count - prev.conflicts[v]
	c.conflicts[v] = count
}

// UpdateAfterRecolorSet repairs the conflict counts after c was cloned from
// prev and every vertex in changed may have a new color. Duplicate indices
// are ignored.
//
// Neighbors outside the changed set are adjusted by +1 or -1 relative to
// prev. Changed vertices are recounted from scratch after all adjustments,
// so edges between two changed vertices are counted from current colors on
// both ends.
func (c *Coloring) UpdateAfterRecolorSet(changed []int, prev *Coloring, g *graph.Graph) {
	if len(changed) == 0 {
		return
	}
	inSet := make([]bool, len(c.solution))
	uniq := changed[:0:0]
	for _, v := range changed {
		if !inSet[v] {
			inSet[v] = true
			uniq = append(uniq, v)
		}
	}

	delta := 0
	for _, v := range uniq {
		old, cur := prev.solution[v], c.solution[v]
		if old == cur {
			continue
		}
		for _, u := range g.Neighbors(v) {
			if inSet[u] {
				continue
			}
			su := c.solution[u]
			wasSame := old != 0 && su == old
			isSame := cur != 0 && su == cur
			switch {
			case isSame && !wasSame:
				c.conflicts[u]++
				delta++
			case wasSame && !isSame:
				c.conflicts[u]--
				delta--
			}
		}
	}
	for _, v := range uniq {
		count := c.countConflicts(v, g)
		delta += count - prev.conflicts[v]
		c.conflicts[v] = count
	}
	c.total = prev.total + delta/2
}

// =============================================================================
// From-Scratch Bookkeeping
// =============================================================================

// Recount recomputes every conflict count and the total from scratch.
func (c *Coloring) Recount(g *graph.Graph) {
	for v := range c.solution {
		c.conflicts[v] = c.countConflicts(v, g)
	}
	c.RefreshTotal()
}

// RefreshTotal recomputes the total from the per-vertex counts.
func (c *Coloring) RefreshTotal() {
	sum := 0
	for _, n := range c.conflicts {
		sum += n
	}
	c.total = sum / 2
}

// Consistent reports whether the stored counts and total match a
// from-scratch recount against g.
func (c *Coloring) Consistent(g *graph.Graph) bool {
	sum := 0
	for v, n := range c.conflicts {
		if n != c.countConflicts(v, g) {
			return false
		}
		sum += n
	}
	return sum%2 == 0 && c.total == sum/2
}

func (c *Coloring) countConflicts(v int, g *graph.Graph) int {
	col := c.solution[v]
	if col == 0 {
		return 0
	}
	n := 0
	for _, u := range g.Neighbors(v) {
		if c.solution[u] == col {
			n++
		}
	}
	return n
}
