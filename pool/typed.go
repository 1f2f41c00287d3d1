package pool

import (
	"fmt"
	"unsafe"
)

// NewFor creates a chain whose chunks hold exactly one T each.
//
// T is stored in memory the garbage collector does not scan. Pointers inside
// T may refer to other chunks of the same chain, but must not be the only
// reference to anything on the Go heap.
func NewFor[T any](count int, opts *Options) (*Chain, error) {
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size == 0 {
		return nil, fmt.Errorf("%w: zero-sized type %T", ErrInvalidSize, zero)
	}
	return New(count, size, opts)
}

// Alloc allocates a chunk from c and returns it as a zeroed *T. The chain's
// chunk size must fit T and be a multiple of its alignment.
// A nil chain returns (nil, nil).
func Alloc[T any](c *Chain) (*T, error) {
	if c == nil {
		return nil, nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	if size > c.chunkSize {
		return nil, fmt.Errorf("%w: %T needs %d bytes, chunk is %d", ErrChunkTooSmall, zero, size, c.chunkSize)
	}
	// Arenas start 8-aligned, so every chunk is aligned when the size is.
	if align := int(unsafe.Alignof(zero)); c.chunkSize%align != 0 {
		return nil, fmt.Errorf("%w: chunk size %d does not keep %T %d-aligned", ErrMisaligned, c.chunkSize, zero, align)
	}
	chunk, err := c.Allocate()
	if err != nil {
		return nil, err
	}
	clear(chunk)
	return (*T)(unsafe.Pointer(unsafe.SliceData(chunk))), nil
}

// Release frees the chunk holding v. It fails like Free if v was not
// obtained from c.
func Release[T any](c *Chain, v *T) error {
	if c == nil {
		return nil
	}
	if v == nil {
		return fmt.Errorf("%w: nil pointer", ErrForeignChunk)
	}
	return c.Free(unsafe.Slice((*byte)(unsafe.Pointer(v)), 1))
}
