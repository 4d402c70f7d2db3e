// Package fractal computes escape-time grids for the Mandelbrot and Julia
// sets.
//
// The package defines the sampling and result types:
//
//   - [Region]: rectangle of the complex plane plus grid resolution
//   - [Params]: fractal kind, region, iteration budget and Julia constant
//   - [Grid]: height x width iteration counts, read-only once returned
//   - [Engine]: runs the per-pixel kernels on a compute backend
//
// The two kernels measure different quantities and are kept apart.
// Mandelbrot stores the first-escape iteration of z -> z^2 + c started at
// zero with c taken from the pixel. Julia starts at the pixel, runs every
// iteration with a fixed c and counts the iterations after which |z|
// stayed below 1000.
//
// # Example
//
//	r := fractal.Region{XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 2, Width: 512, Height: 512}
//	grid, err := fractal.ComputeMandelbrot(r, 100)
//	if errors.Is(err, fractal.ErrInvalidRegion) {
//	    // degenerate rectangle
//	}
//
// # Thread Safety
//
// Grids are immutable after the compute call returns and can be shared
// between goroutines. An [Engine] holds no per-call state.
package fractal
