package bitmap

import "errors"

var (
	// ErrEmpty indicates a bitmap was requested for zero bits.
	ErrEmpty = errors.New("bitmap: length must be >= 1")

	// ErrShortBuffer indicates the backing buffer cannot hold the requested bits.
	ErrShortBuffer = errors.New("bitmap: buffer too small for length")
)
