package fractal

import "math/cmplx"

// MandelbrotEscape iterates z -> z^2 + c from zero and returns the number
// of iterations taken while |z| <= 2, capped at maxIter. A result of
// maxIter means c never escaped within the budget.
func MandelbrotEscape(c complex128, maxIter int) int {
	var z complex128
	n := 0
	for cmplx.Abs(z) <= 2 && n < maxIter {
		z = z*z + c
		n++
	}
	return n
}

func mandelbrotRows(g *Grid, r Region, start, end int) {
	for y := start; y < end; y++ {
		row := g.row(y)
		for x := range row {
			row[x] = MandelbrotEscape(r.Sample(x, y), g.maxIter)
		}
	}
}
