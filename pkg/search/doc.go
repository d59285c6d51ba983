// Package search runs the discrete flower-pollination search for small
// vertex colorings.
//
// # Overview
//
// A [Searcher] starts from an initial color budget k (typically one less
// than a greedy coloring used) and keeps lowering it. For each k it draws a
// fresh random population and evolves it for up to MaxGenerations
// generations. When some individual reaches zero conflicts the search moves
// on to k-1. When the generations run out first, the run ends and reports
// k+1, the smallest count for which a proper coloring was found.
//
// # Generations
//
// Each generation has two fork-join stages:
//
//  1. Reduction: find the individual with the fewest conflicting edges (ties
//     go to the lowest slot) and freeze a copy of it as "best".
//  2. Update: every slot, independently, produces a candidate through the
//     configured [pollinate.Pollinator] and keeps it if it has no more
//     conflicts than the current individual.
//
// Slots whose lifetime (generations since their last strict improvement)
// exceeds Parameters.LifetimeLimit are reinitialized at random with
// probability Parameters.SwitchP. The best slot is never reinitialized and
// never runs the global operator against itself.
//
// # Randomness
//
// Every slot owns a PCG stream derived from (Seed, k, slot). Runs with the
// same seed and options therefore produce the same result regardless of the
// worker count. Workers == 1 runs both stages on the calling goroutine.
//
// # Cancellation
//
// The context is checked between generations. A cancelled run returns the
// partial [Result] together with the context's error.
package search
