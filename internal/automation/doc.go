// Package automation runs scripted renders.
//
// A [Scenario] is a YAML list of steps, each a fractal, an optional
// preset and overrides, written to its save_as path:
//
//	name: tour
//	steps:
//	  - fractal: mandelbrot
//	    preset: seahorse
//	    save_as: seahorse.png
//	  - fractal: julia
//	    c: {re: -0.123, im: 0.745}
//	    save_as: rabbit.svg
//
// A [ParameterSweep] renders one frame per value of zoom, c_re, c_im or
// max_iter.
package automation
