package fractal

import "math/cmplx"

// JuliaBailout is the magnitude a Julia orbit must stay under to be
// counted in an iteration.
const JuliaBailout = 1000

// JuliaBounded runs all maxIter iterations of z -> z^2 + c from z0 and
// counts the iterations after which |z| < JuliaBailout. The orbit is not
// stopped at the first escape; every iteration contributes its own test.
func JuliaBounded(z0, c complex128, maxIter int) int {
	z := z0
	n := 0
	for i := 0; i < maxIter; i++ {
		z = z*z + c
		if cmplx.Abs(z) < JuliaBailout {
			n++
		}
	}
	return n
}

func juliaRows(g *Grid, r Region, c complex128, start, end int) {
	for y := start; y < end; y++ {
		row := g.row(y)
		for x := range row {
			row[x] = JuliaBounded(r.Lattice(x, y), c, g.maxIter)
		}
	}
}
