package pool

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize indicates a chunk count or chunk size below 1.
	ErrInvalidSize = errors.New("pool: chunk count and chunk size must be >= 1")

	// ErrOverflow indicates chunk count * chunk size does not fit in an int.
	ErrOverflow = errors.New("pool: arena size overflows")

	// ErrForeignChunk indicates a chunk that lies in no arena of the chain.
	ErrForeignChunk = errors.New("pool: chunk does not belong to this chain")

	// ErrMisaligned indicates an address inside an arena that is not on a chunk boundary.
	ErrMisaligned = errors.New("pool: address is not on a chunk boundary")

	// ErrDoubleFree indicates a free of a chunk that is already free.
	ErrDoubleFree = errors.New("pool: chunk is already free")

	// ErrDestroyed indicates use of a chain after Destroy.
	ErrDestroyed = errors.New("pool: chain destroyed")

	// ErrChunkTooSmall indicates a typed allocation larger than the chunk size.
	ErrChunkTooSmall = errors.New("pool: value does not fit in chunk")
)

// InvariantError reports bookkeeping that has gone out of sync with the
// bitmap. It is never returned for caller misuse.
type InvariantError struct {
	Pool int
	Msg  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violation in pool %d: %s", e.Pool, e.Msg)
}
