package analysis

import (
	"math"
	"testing"

	"github.com/san-kum/escapegrid/internal/fractal"
)

func juliaSample(t *testing.T) *fractal.Grid {
	t.Helper()
	r := fractal.Region{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 3, Height: 3}
	g, err := fractal.ComputeJulia(r, complex(-0.7, 0.27), 10)
	if err != nil {
		t.Fatalf("compute failed: %v", err)
	}
	return g
}

func TestHistogram(t *testing.T) {
	// cells: 2 3 2 / 3 10 3 / 2 3 2
	bins := Histogram(juliaSample(t))

	if len(bins) != 11 {
		t.Fatalf("expected 11 bins, got %d", len(bins))
	}
	if bins[2] != 4 || bins[3] != 4 || bins[10] != 1 {
		t.Errorf("unexpected bins: %v", bins)
	}

	total := 0
	for _, b := range bins {
		total += b
	}
	if total != 9 {
		t.Errorf("expected 9 cells, got %d", total)
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(juliaSample(t))

	if s.Cells != 9 {
		t.Errorf("expected 9 cells, got %d", s.Cells)
	}
	if s.Min != 2 || s.Max != 10 {
		t.Errorf("expected range [2, 10], got [%d, %d]", s.Min, s.Max)
	}
	if math.Abs(s.Mean-30.0/9.0) > 1e-12 {
		t.Errorf("expected mean %.4f, got %.4f", 30.0/9.0, s.Mean)
	}
	if s.Bounded != 1 || s.Escaped != 8 {
		t.Errorf("expected 1 bounded and 8 escaped, got %d and %d", s.Bounded, s.Escaped)
	}
	if math.Abs(s.BoundedFraction-1.0/9.0) > 1e-12 {
		t.Errorf("expected bounded fraction 1/9, got %f", s.BoundedFraction)
	}
	if s.StdDev <= 0 {
		t.Error("expected positive spread")
	}
}

func TestRowProfile(t *testing.T) {
	p := RowProfile(juliaSample(t))

	want := []float64{7.0 / 3.0, 16.0 / 3.0, 7.0 / 3.0}
	for i := range want {
		if math.Abs(p[i]-want[i]) > 1e-12 {
			t.Errorf("row %d: expected %.4f, got %.4f", i, want[i], p[i])
		}
	}
}

func TestTrim(t *testing.T) {
	got := Trim([]float64{1, 2, 0, 0})
	if len(got) != 2 {
		t.Errorf("expected 2 bins, got %d", len(got))
	}
	if len(Trim([]float64{0, 0})) != 1 {
		t.Error("expected one bin to remain")
	}
}
