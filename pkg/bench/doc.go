// Package bench runs the search over suites of DIMACS instances with known
// chromatic numbers and reports how close it gets.
//
// A [Suite] is a TOML file listing instances and the search configuration:
//
//	name = "final"
//	graph_dir = "graphs"
//	tries = 10
//
//	[[instance]]
//	name = "DSJC125.1"
//	chromatic = 5
//
// Each try starts from one color below the greedy bound and stops once the
// known chromatic number is reached. Finished tries are stored in a
// cache.Cache, so an interrupted suite or sweep resumes where it stopped.
//
// [Runner.SweepParameters] and [Runner.SweepPollinators] repeat a suite over
// a grid of settings. Reports render as lipgloss tables ([Table],
// [SweepTable]), go-echarts HTML pages ([WriteChart], [WriteSweepChart]) or
// JSON.
package bench
