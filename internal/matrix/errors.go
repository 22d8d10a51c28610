package matrix

import "errors"

var (
	// ErrBadShape is returned when a requested shape has a non-positive dimension.
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrDimensionMismatch is returned when two operands have different shapes.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")
)
