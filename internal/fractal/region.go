package fractal

import (
	"fmt"
	"math"
)

// MaxCells bounds Width*Height so a grid can always be allocated.
const MaxCells = 1 << 30

// Region is the sampled rectangle of the complex plane and the grid
// resolution laid over it. Real parts run along x, imaginary parts along y.
type Region struct {
	XMin   float64
	XMax   float64
	YMin   float64
	YMax   float64
	Width  int
	Height int
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Validate reports ErrInvalidRegion or ErrInvalidResolution wrapped in a
// *ParamError naming the first offending field.
func (r Region) Validate() error {
	bounds := []struct {
		name string
		v    float64
	}{
		{"x_min", r.XMin}, {"x_max", r.XMax}, {"y_min", r.YMin}, {"y_max", r.YMax},
	}
	for _, b := range bounds {
		if !finite(b.v) {
			return paramErr(b.name, b.v, ErrInvalidRegion)
		}
	}
	if r.XMin >= r.XMax {
		return paramErr("x_min", fmt.Sprintf("%g >= x_max %g", r.XMin, r.XMax), ErrInvalidRegion)
	}
	if r.YMin >= r.YMax {
		return paramErr("y_min", fmt.Sprintf("%g >= y_max %g", r.YMin, r.YMax), ErrInvalidRegion)
	}
	if r.Width < 1 {
		return paramErr("width", r.Width, ErrInvalidResolution)
	}
	if r.Height < 1 {
		return paramErr("height", r.Height, ErrInvalidResolution)
	}
	if r.Width > MaxCells/r.Height {
		return paramErr("width", fmt.Sprintf("%d x height %d exceeds %d cells", r.Width, r.Height, MaxCells), ErrInvalidResolution)
	}
	return nil
}

// Sample maps pixel (x, y) to the lower-left corner of its cell:
// xMin + x*(xMax-xMin)/width. The right and top bounds are never sampled.
func (r Region) Sample(x, y int) complex128 {
	re := r.XMin + float64(x)*(r.XMax-r.XMin)/float64(r.Width)
	im := r.YMin + float64(y)*(r.YMax-r.YMin)/float64(r.Height)
	return complex(re, im)
}

// Lattice maps pixel (x, y) onto an endpoint-inclusive lattice: pixel 0
// sits on the min bound and pixel n-1 on the max bound. A single pixel
// sits on the min bound.
func (r Region) Lattice(x, y int) complex128 {
	return complex(
		linspace(r.XMin, r.XMax, r.Width, x),
		linspace(r.YMin, r.YMax, r.Height, y),
	)
}

func linspace(lo, hi float64, n, i int) float64 {
	if n <= 1 {
		return lo
	}
	if i == n-1 {
		return hi
	}
	return lo + float64(i)*((hi-lo)/float64(n-1))
}

func (r Region) Center() complex128 {
	return complex((r.XMin+r.XMax)/2, (r.YMin+r.YMax)/2)
}

// Span returns the real and imaginary extents.
func (r Region) Span() (float64, float64) {
	return r.XMax - r.XMin, r.YMax - r.YMin
}

// Aspect is the ratio of the real extent to the imaginary extent.
func (r Region) Aspect() float64 {
	w, h := r.Span()
	return w / h
}

// Zoom scales the bounds around the center by factor; factor < 1 zooms in.
// The resolution is unchanged.
func (r Region) Zoom(factor float64) Region {
	c := r.Center()
	w, h := r.Span()
	w *= factor / 2
	h *= factor / 2
	r.XMin, r.XMax = real(c)-w, real(c)+w
	r.YMin, r.YMax = imag(c)-h, imag(c)+h
	return r
}

// ZoomAt scales the bounds by factor keeping point p at the same relative
// position in the rectangle.
func (r Region) ZoomAt(p complex128, factor float64) Region {
	r.XMin = real(p) + (r.XMin-real(p))*factor
	r.XMax = real(p) + (r.XMax-real(p))*factor
	r.YMin = imag(p) + (r.YMin-imag(p))*factor
	r.YMax = imag(p) + (r.YMax-imag(p))*factor
	return r
}

// Pan shifts the bounds by fractions of the current extents.
func (r Region) Pan(dx, dy float64) Region {
	w, h := r.Span()
	r.XMin += dx * w
	r.XMax += dx * w
	r.YMin += dy * h
	r.YMax += dy * h
	return r
}

// WithResolution returns r with a new grid size.
func (r Region) WithResolution(width, height int) Region {
	r.Width = width
	r.Height = height
	return r
}

func (r Region) String() string {
	return fmt.Sprintf("[%g, %g] x [%g, %g] @ %dx%d", r.XMin, r.XMax, r.YMin, r.YMax, r.Width, r.Height)
}
