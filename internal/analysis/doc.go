// Package analysis summarizes escape-time grids.
//
// The package reduces a [fractal.Grid] to numbers that are easy to print
// or plot:
//
//   - [Histogram]: number of cells per iteration count
//   - [Summarize]: min, max, mean, spread and bounded fraction
//   - [RowProfile]: mean count of each grid row
//
// # Bounded Cells
//
// For Mandelbrot grids a cell equal to MaxIter never escaped within the
// budget and is likely inside the set. For Julia grids it means the orbit
// stayed under the bailout for every iteration.
//
//	s := analysis.Summarize(grid)
//	fmt.Printf("%.1f%% bounded\n", 100*s.BoundedFraction)
package analysis
