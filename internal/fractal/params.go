package fractal

import (
	"fmt"
	"math"
	"math/cmplx"
)

type Kind string

const (
	Mandelbrot Kind = "mandelbrot"
	Julia      Kind = "julia"
)

// Kinds lists the fractals with a kernel.
var Kinds = []Kind{Mandelbrot, Julia}

func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == s {
			return k, nil
		}
	}
	return "", paramErr("kind", s, ErrUnknownKind)
}

// Params is the complete input of one grid computation. C is ignored for
// Mandelbrot, where the constant comes from each pixel.
type Params struct {
	Kind    Kind
	Region  Region
	MaxIter int
	C       complex128
}

func (p Params) Validate() error {
	switch p.Kind {
	case Mandelbrot:
	case Julia:
		if cmplx.IsNaN(p.C) || cmplx.IsInf(p.C) {
			return paramErr("c", p.C, ErrInvalidConstant)
		}
	default:
		return paramErr("kind", p.Kind, ErrUnknownKind)
	}
	if err := p.Region.Validate(); err != nil {
		return err
	}
	if p.MaxIter < 0 {
		return paramErr("max_iter", p.MaxIter, ErrInvalidIterations)
	}
	return nil
}

// Cost is the upper bound on kernel iterations for p, saturating at
// math.MaxInt64.
func (p Params) Cost() int64 {
	cells := int64(p.Region.Width) * int64(p.Region.Height)
	if cells > 0 && int64(p.MaxIter) > math.MaxInt64/cells {
		return math.MaxInt64
	}
	return int64(p.MaxIter) * cells
}

func (p Params) String() string {
	if p.Kind == Julia {
		return fmt.Sprintf("%s c=%v %s iter=%d", p.Kind, p.C, p.Region, p.MaxIter)
	}
	return fmt.Sprintf("%s %s iter=%d", p.Kind, p.Region, p.MaxIter)
}
