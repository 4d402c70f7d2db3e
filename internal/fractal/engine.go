package fractal

import (
	"github.com/san-kum/escapegrid/internal/compute"
)

// Engine runs the kernels on a compute backend. The zero value is not
// usable; use NewEngine.
type Engine struct {
	backend compute.Backend
}

// NewEngine binds b. A nil backend uses the process-wide active backend at
// call time.
func NewEngine(b compute.Backend) *Engine {
	return &Engine{backend: b}
}

func (e *Engine) Backend() compute.Backend {
	if e.backend == nil {
		return compute.GetBackend()
	}
	return e.backend
}

func (e *Engine) Mandelbrot(r Region, maxIter int) (*Grid, error) {
	return e.Compute(Params{Kind: Mandelbrot, Region: r, MaxIter: maxIter})
}

func (e *Engine) Julia(r Region, c complex128, maxIter int) (*Grid, error) {
	return e.Compute(Params{Kind: Julia, Region: r, MaxIter: maxIter, C: c})
}

// Compute validates p and fills a new grid. Nothing is returned on error.
func (e *Engine) Compute(p Params) (*Grid, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	g := newGrid(p.Region.Width, p.Region.Height, p.MaxIter)
	r := p.Region

	var rows func(start, end int)
	switch p.Kind {
	case Mandelbrot:
		rows = func(start, end int) { mandelbrotRows(g, r, start, end) }
	case Julia:
		c := p.C
		rows = func(start, end int) { juliaRows(g, r, c, start, end) }
	}

	e.Backend().ForRows(r.Height, rows)
	return g, nil
}

var defaultEngine = NewEngine(nil)

// ComputeMandelbrot fills a grid with first-escape counts using the active
// compute backend.
func ComputeMandelbrot(r Region, maxIter int) (*Grid, error) {
	return defaultEngine.Mandelbrot(r, maxIter)
}

// ComputeJulia fills a grid with bounded-iteration counts for constant c
// using the active compute backend.
func ComputeJulia(r Region, c complex128, maxIter int) (*Grid, error) {
	return defaultEngine.Julia(r, c, maxIter)
}

func Compute(p Params) (*Grid, error) {
	return defaultEngine.Compute(p)
}
