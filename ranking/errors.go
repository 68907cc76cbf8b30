package ranking

import "errors"

var (
	// ErrDimensionMismatch is returned when the query and a matrix row differ in length.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrRowCountMismatch is returned when the matrix and corpus differ in length.
	ErrRowCountMismatch = errors.New("matrix rows do not match corpus size")

	// ErrUnknownStrategy is returned by ByName for unrecognized names.
	ErrUnknownStrategy = errors.New("unknown ranking strategy")
)
