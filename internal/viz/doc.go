// Package viz renders escape-time grids in the terminal.
//
//   - [Colormap]: matplotlib-style segment colormaps (jet, hot, gray, cool)
//   - [HalfBlocks] and [Figure]: truecolor half-block heatmaps with axis
//     labels and a colorbar
//   - [Canvas]: Braille raster for monochrome set membership plots
//   - [Explorer]: Bubble Tea model for interactive pan and zoom
//
// # Key Bindings
//
//	arrows/hjkl - Pan by a tenth of the view
//	+ / -       - Zoom in / out around the center
//	[ / ]       - Halve / double the iteration limit
//	x X y Y     - Nudge the Julia constant
//	f           - Switch between Mandelbrot and Julia
//	c           - Cycle colormaps
//	t           - Cycle themes
//	r           - Reset the view
//
// Rows are drawn with the imaginary axis pointing up: the last grid row
// is the top line of the output.
package viz
