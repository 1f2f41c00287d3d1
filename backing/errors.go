package backing

import "errors"

var (
	// ErrExhausted indicates the backing store cannot supply the requested bytes.
	ErrExhausted = errors.New("backing: memory exhausted")

	// ErrInvalidSize indicates a request for fewer than one byte.
	ErrInvalidSize = errors.New("backing: size must be >= 1")

	// ErrNotOwned indicates a release of a region this backing did not hand out
	// or has already taken back.
	ErrNotOwned = errors.New("backing: region not owned")
)
