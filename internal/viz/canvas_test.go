package viz

import (
	"strings"
	"testing"

	"github.com/san-kum/escapegrid/internal/fractal"
)

func TestCanvasSet(t *testing.T) {
	c := NewCanvas(2, 1)
	c.Set(0, 0)
	c.Set(3, 3)
	c.Set(-1, 0)
	c.Set(4, 0)

	if !c.IsSet(0, 0) || !c.IsSet(3, 3) {
		t.Error("expected dots set")
	}
	if c.IsSet(1, 0) {
		t.Error("unexpected dot")
	}
	if c.Grid[0][0] != 0x2801 || c.Grid[0][1] != 0x2880 {
		t.Errorf("unexpected runes %U %U", c.Grid[0][0], c.Grid[0][1])
	}

	c.Clear()
	if c.IsSet(0, 0) {
		t.Error("expected cleared canvas")
	}
}

func TestBrailleSet(t *testing.T) {
	r := fractal.Region{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 3, Height: 3}
	g, err := fractal.ComputeJulia(r, complex(-0.7, 0.27), 10)
	if err != nil {
		t.Fatal(err)
	}

	c := BrailleSet(g)
	if c.Width != 2 || c.Height != 1 {
		t.Fatalf("expected 2x1 canvas, got %dx%d", c.Width, c.Height)
	}
	// only the center cell stays bounded
	if !c.IsSet(1, 1) {
		t.Error("expected center dot")
	}
	dots := 0
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if c.IsSet(x, y) {
				dots++
			}
		}
	}
	if dots != 1 {
		t.Errorf("expected 1 dot, got %d", dots)
	}
	if !strings.HasSuffix(c.String(), "\n") {
		t.Error("expected trailing newline")
	}
}

func TestHalfBlocksShape(t *testing.T) {
	r := fractal.Region{XMin: -2.5, XMax: 1.5, YMin: -2, YMax: 2, Width: 12, Height: 7}
	g, err := fractal.ComputeMandelbrot(r, 20)
	if err != nil {
		t.Fatal(err)
	}

	out := HalfBlocks(g, Hot)
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d", len(lines))
	}
	for i, line := range lines {
		if n := strings.Count(line, upperHalf); n != 12 {
			t.Errorf("line %d: expected 12 blocks, got %d", i, n)
		}
	}

	fig := Figure("mandelbrot", g, r, Hot)
	for _, want := range []string{"mandelbrot", "-2.5", "1.5"} {
		if !strings.Contains(fig, want) {
			t.Errorf("expected figure to contain %q", want)
		}
	}
}
