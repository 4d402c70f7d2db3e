package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/san-kum/escapegrid/internal/analysis"
	"github.com/san-kum/escapegrid/internal/fractal"
)

// Constant is the Julia parameter.
type Constant struct {
	Re float64 `json:"re"`
	Im float64 `json:"im"`
}

// Meta records how a grid was produced.
type Meta struct {
	Kind      string    `json:"kind"`
	XMin      float64   `json:"x_min"`
	XMax      float64   `json:"x_max"`
	YMin      float64   `json:"y_min"`
	YMax      float64   `json:"y_max"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	MaxIter   int       `json:"max_iter"`
	C         *Constant `json:"c,omitempty"`
	Colormap  string    `json:"colormap"`
	Backend   string    `json:"backend"`
	Elapsed   float64   `json:"elapsed_seconds"`
	Timestamp time.Time `json:"timestamp"`
}

func NewMeta(p fractal.Params, cmap, backend string, elapsed time.Duration) Meta {
	m := Meta{
		Kind:      string(p.Kind),
		XMin:      p.Region.XMin,
		XMax:      p.Region.XMax,
		YMin:      p.Region.YMin,
		YMax:      p.Region.YMax,
		Width:     p.Region.Width,
		Height:    p.Region.Height,
		MaxIter:   p.MaxIter,
		Colormap:  cmap,
		Backend:   backend,
		Elapsed:   elapsed.Seconds(),
		Timestamp: time.Now(),
	}
	if p.Kind == fractal.Julia {
		m.C = &Constant{Re: real(p.C), Im: imag(p.C)}
	}
	return m
}

func (m Meta) Region() fractal.Region {
	return fractal.Region{XMin: m.XMin, XMax: m.XMax, YMin: m.YMin, YMax: m.YMax, Width: m.Width, Height: m.Height}
}

// ExportData is the JSON document: metadata, summary statistics and the
// grid rows, row 0 at YMin.
type ExportData struct {
	Meta
	Summary analysis.Summary `json:"summary"`
	Grid    [][]int          `json:"grid"`
}

func WriteJSON(w io.Writer, meta Meta, g *fractal.Grid) error {
	data := ExportData{
		Meta:    meta,
		Summary: analysis.Summarize(g),
		Grid:    g.Rows(),
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

func ExportJSON(path string, meta Meta, g *fractal.Grid) error {
	return createFile(path, func(w io.Writer) error {
		return WriteJSON(w, meta, g)
	})
}
