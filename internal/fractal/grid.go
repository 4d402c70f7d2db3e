package fractal

// Grid holds one iteration count per sample, row-major with row 0 at
// YMin. It is filled once by a kernel and read-only afterwards.
type Grid struct {
	width   int
	height  int
	maxIter int
	cells   []int
}

func newGrid(width, height, maxIter int) *Grid {
	return &Grid{
		width:   width,
		height:  height,
		maxIter: maxIter,
		cells:   make([]int, width*height),
	}
}

func (g *Grid) Width() int   { return g.width }
func (g *Grid) Height() int  { return g.height }
func (g *Grid) MaxIter() int { return g.maxIter }
func (g *Grid) Len() int     { return len(g.cells) }

// At returns the count at column x, row y.
func (g *Grid) At(x, y int) int {
	return g.cells[y*g.width+x]
}

// Row returns a copy of row y.
func (g *Grid) Row(y int) []int {
	row := make([]int, g.width)
	copy(row, g.cells[y*g.width:(y+1)*g.width])
	return row
}

// Rows returns a copy of the grid as height slices of width counts.
func (g *Grid) Rows() [][]int {
	rows := make([][]int, g.height)
	for y := range rows {
		rows[y] = g.Row(y)
	}
	return rows
}

// Values returns a copy of the row-major cells.
func (g *Grid) Values() []int {
	c := make([]int, len(g.cells))
	copy(c, g.cells)
	return c
}

// Each calls fn for every cell in row-major order.
func (g *Grid) Each(fn func(x, y, v int)) {
	for i, v := range g.cells {
		fn(i%g.width, i/g.width, v)
	}
}

// Bounds returns the smallest and largest counts in the grid.
func (g *Grid) Bounds() (lo, hi int) {
	if len(g.cells) == 0 {
		return 0, 0
	}
	lo, hi = g.cells[0], g.cells[0]
	for _, v := range g.cells {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// Equal reports whether both grids have the same shape, budget and cells.
func (g *Grid) Equal(other *Grid) bool {
	if g == nil || other == nil {
		return g == other
	}
	if g.width != other.width || g.height != other.height || g.maxIter != other.maxIter {
		return false
	}
	for i := range g.cells {
		if g.cells[i] != other.cells[i] {
			return false
		}
	}
	return true
}

func (g *Grid) row(y int) []int {
	return g.cells[y*g.width : (y+1)*g.width]
}
