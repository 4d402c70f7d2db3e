package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/san-kum/escapegrid/internal/fractal"
	"github.com/san-kum/escapegrid/internal/viz"
)

var sampleRegion = fractal.Region{XMin: -2, XMax: 2, YMin: -1.5, YMax: 1.5, Width: 4, Height: 3}

// rows: {1,2,2,2}, {1,5,20,2}, {1,5,20,2}
func sampleGrid(t *testing.T) *fractal.Grid {
	t.Helper()
	g, err := fractal.ComputeMandelbrot(sampleRegion, 20)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func sampleMeta() Meta {
	p := fractal.Params{Kind: fractal.Mandelbrot, Region: sampleRegion, MaxIter: 20}
	return NewMeta(p, "jet", "serial", 1500*time.Millisecond)
}

func TestImageOrientation(t *testing.T) {
	g := sampleGrid(t)
	img := Image(g, viz.Jet)

	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Fatalf("expected 4x3 image, got %v", img.Bounds())
	}
	// top pixel row is the last grid row
	if got := img.RGBAAt(2, 0); got != viz.Jet.At(1) {
		t.Errorf("expected max color at (2,0), got %v", got)
	}
	if got := img.RGBAAt(0, 2); got != viz.Jet.At(0) {
		t.Errorf("expected min color at (0,2), got %v", got)
	}
	if got := img.RGBAAt(1, 2); got != viz.Jet.At(1.0/19) {
		t.Errorf("expected count 2 color at (1,2), got %v", got)
	}
}

func TestWritePNG(t *testing.T) {
	g := sampleGrid(t)
	path := filepath.Join(t.TempDir(), "grid.png")

	if err := WritePNG(path, g, viz.Hot); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if img.Bounds().Dx() != 4 || img.Bounds().Dy() != 3 {
		t.Errorf("expected 4x3, got %v", img.Bounds())
	}
}

func TestFigureSVG(t *testing.T) {
	g := sampleGrid(t)
	doc, err := FigureSVG(g, sampleRegion, viz.Jet, "mandel <4x3>")
	if err != nil {
		t.Fatal(err)
	}

	for _, want := range []string{
		"<svg",
		"data:image/png;base64,",
		"mandel &lt;4x3&gt;",
		">-2<", ">2<",
		">-1.5<", ">0.75<",
		">1<", ">20<",
		`fill="url(#colorbar)"`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("expected svg to contain %q", want)
		}
	}
	if !strings.HasSuffix(doc, "</svg>") {
		t.Error("expected closing svg tag")
	}
}

func TestCanvasToSVG(t *testing.T) {
	g, err := fractal.ComputeJulia(fractal.Region{XMin: -2, XMax: 2, YMin: -2, YMax: 2, Width: 3, Height: 3}, complex(-0.7, 0.27), 10)
	if err != nil {
		t.Fatal(err)
	}

	doc := CanvasToSVG(viz.BrailleSet(g), 4, "#ffffff")
	if n := strings.Count(doc, "<circle"); n != 1 {
		t.Errorf("expected 1 dot, got %d", n)
	}
	if CanvasToSVG(nil, 4, "#ffffff") != "" {
		t.Error("expected empty output for nil canvas")
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, sampleGrid(t)); err != nil {
		t.Fatal(err)
	}

	want := "1,2,2,2\n1,5,20,2\n1,5,20,2\n"
	if buf.String() != want {
		t.Errorf("expected %q, got %q", want, buf.String())
	}
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, sampleMeta(), sampleGrid(t)); err != nil {
		t.Fatal(err)
	}

	var data ExportData
	if err := json.Unmarshal(buf.Bytes(), &data); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if data.Kind != "mandelbrot" {
		t.Errorf("expected kind mandelbrot, got %s", data.Kind)
	}
	if data.Elapsed != 1.5 {
		t.Errorf("expected elapsed 1.5, got %f", data.Elapsed)
	}
	if data.Summary.Max != 20 || data.Summary.Bounded != 2 {
		t.Errorf("unexpected summary %+v", data.Summary)
	}
	if len(data.Grid) != 3 || data.Grid[1][2] != 20 {
		t.Errorf("unexpected grid %v", data.Grid)
	}
	if data.Region() != sampleRegion {
		t.Errorf("expected region %v, got %v", sampleRegion, data.Region())
	}
	if data.C != nil {
		t.Error("mandelbrot export should omit the julia constant")
	}
}

func TestNewMetaJulia(t *testing.T) {
	p := fractal.Params{Kind: fractal.Julia, Region: sampleRegion, MaxIter: 10, C: complex(0, 1)}
	m := NewMeta(p, "hot", "cpu", time.Second)

	if m.C == nil || m.C.Re != 0 || m.C.Im != 1 {
		t.Errorf("expected c = 0+1i, got %+v", m.C)
	}
}

func TestFormatFor(t *testing.T) {
	tests := []struct {
		path string
		want Format
		err  bool
	}{
		{"out.png", PNG, false},
		{"OUT.PNG", PNG, false},
		{"dir/figure.svg", SVG, false},
		{"grid.json", JSON, false},
		{"grid.csv", CSV, false},
		{"grid.gif", "", true},
		{"grid", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFor(tt.path)
		if tt.err {
			if !errors.Is(err, ErrUnknownFormat) {
				t.Errorf("%s: expected ErrUnknownFormat, got %v", tt.path, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("%s: unexpected error %v", tt.path, err)
		}
		if got != tt.want {
			t.Errorf("%s: expected %s, got %s", tt.path, tt.want, got)
		}
	}
}

func TestWriteAllFormats(t *testing.T) {
	g := sampleGrid(t)
	dir := t.TempDir()
	opts := Options{Meta: sampleMeta(), Cmap: viz.Jet, Title: "mandelbrot"}

	for _, f := range Formats {
		path := filepath.Join(dir, "grid."+string(f))
		got, err := Write(path, g, opts)
		if err != nil {
			t.Fatalf("%s: write failed: %v", f, err)
		}
		if got != f {
			t.Errorf("expected format %s, got %s", f, got)
		}
		info, err := os.Stat(path)
		if err != nil {
			t.Fatalf("%s: %v", f, err)
		}
		if info.Size() == 0 {
			t.Errorf("%s: empty file", f)
		}
	}

	opts.Mono = true
	path := filepath.Join(dir, "mono.svg")
	if _, err := Write(path, g, opts); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(path)
	if n := strings.Count(string(b), "<circle"); n != 2 {
		t.Errorf("expected 2 bounded dots, got %d", n)
	}
}

type closeFailer struct {
	bytes.Buffer
	closeErr error
	closed   bool
}

func (c *closeFailer) Close() error {
	c.closed = true
	return c.closeErr
}

func TestWriteAndCloseReportsClose(t *testing.T) {
	errDisk := errors.New("disk full")
	errEncode := errors.New("encode failed")

	wc := &closeFailer{closeErr: errDisk}
	err := writeAndClose(wc, func(w io.Writer) error {
		return WriteCSV(w, sampleGrid(t))
	})
	if !errors.Is(err, errDisk) {
		t.Errorf("expected close error, got %v", err)
	}

	wc = &closeFailer{closeErr: errDisk}
	err = writeAndClose(wc, func(io.Writer) error { return errEncode })
	if !errors.Is(err, errEncode) {
		t.Errorf("expected encode error first, got %v", err)
	}
	if !wc.closed {
		t.Error("expected file closed after a failed write")
	}

	wc = &closeFailer{}
	if err := writeAndClose(wc, func(w io.Writer) error { return WriteCSV(w, sampleGrid(t)) }); err != nil {
		t.Errorf("expected success, got %v", err)
	}
}
