package fractal

import (
	"errors"
	"fmt"
)

// Domain errors for grid computation.
var (
	// ErrInvalidRegion indicates a degenerate or non-finite sampling rectangle.
	ErrInvalidRegion = errors.New("fractal: invalid region (bounds must be finite with min < max)")

	// ErrInvalidResolution indicates a grid width or height below one.
	ErrInvalidResolution = errors.New("fractal: invalid resolution (width and height must be >= 1)")

	// ErrInvalidIterations indicates a negative iteration budget.
	ErrInvalidIterations = errors.New("fractal: invalid iteration count (must be >= 0)")

	// ErrInvalidConstant indicates a non-finite Julia constant.
	ErrInvalidConstant = errors.New("fractal: invalid julia constant (NaN or Inf detected)")

	// ErrUnknownKind indicates a fractal kind with no kernel.
	ErrUnknownKind = errors.New("fractal: unknown fractal kind")
)

// ParamError wraps a domain error with the offending parameter.
type ParamError struct {
	Field   string
	Value   any
	Wrapped error
}

func (e *ParamError) Error() string {
	return fmt.Sprintf("%s: %s = %v", e.Wrapped.Error(), e.Field, e.Value)
}

func (e *ParamError) Unwrap() error {
	return e.Wrapped
}

func paramErr(field string, value any, err error) error {
	return &ParamError{Field: field, Value: value, Wrapped: err}
}
