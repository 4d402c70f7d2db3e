package analysis

import (
	"math"

	"github.com/san-kum/escapegrid/internal/fractal"
)

// Histogram returns MaxIter+1 bins; bin i counts the cells equal to i.
func Histogram(g *fractal.Grid) []int {
	bins := make([]int, g.MaxIter()+1)
	g.Each(func(_, _, v int) {
		bins[v]++
	})
	return bins
}

// HistogramFloat is Histogram converted for plotting.
func HistogramFloat(g *fractal.Grid) []float64 {
	bins := Histogram(g)
	out := make([]float64, len(bins))
	for i, b := range bins {
		out[i] = float64(b)
	}
	return out
}

type Summary struct {
	Cells           int     `json:"cells"`
	Min             int     `json:"min"`
	Max             int     `json:"max"`
	Mean            float64 `json:"mean"`
	StdDev          float64 `json:"std_dev"`
	Bounded         int     `json:"bounded"`
	Escaped         int     `json:"escaped"`
	BoundedFraction float64 `json:"bounded_fraction"`
}

func Summarize(g *fractal.Grid) Summary {
	s := Summary{Cells: g.Len()}
	if s.Cells == 0 {
		return s
	}
	s.Min, s.Max = g.Bounds()

	values := g.Values()
	sum := 0.0
	for _, v := range values {
		sum += float64(v)
		if v == g.MaxIter() {
			s.Bounded++
		}
	}
	s.Mean = sum / float64(s.Cells)

	variance := 0.0
	for _, v := range values {
		d := float64(v) - s.Mean
		variance += d * d
	}
	s.StdDev = math.Sqrt(variance / float64(s.Cells))

	s.Escaped = s.Cells - s.Bounded
	s.BoundedFraction = float64(s.Bounded) / float64(s.Cells)
	return s
}

// RowProfile returns the mean count of every row, starting at row 0.
func RowProfile(g *fractal.Grid) []float64 {
	profile := make([]float64, g.Height())
	for y := range profile {
		sum := 0
		for _, v := range g.Row(y) {
			sum += v
		}
		profile[y] = float64(sum) / float64(g.Width())
	}
	return profile
}

// Trim drops trailing zero bins, keeping at least one.
func Trim(bins []float64) []float64 {
	end := len(bins)
	for end > 1 && bins[end-1] == 0 {
		end--
	}
	return bins[:end]
}
