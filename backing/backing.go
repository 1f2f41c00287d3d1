package backing

import (
	"fmt"
	"unsafe"
)

// Backing is the memory source behind a chunk pool.
type Backing interface {
	// Acquire returns a zeroed region of exactly n bytes (len == cap == n),
	// aligned to at least 8 bytes.
	Acquire(n int) ([]byte, error)

	// Release returns a region previously obtained from Acquire. The region
	// must be passed back unmodified in length and capacity.
	Release(b []byte) error
}

// Heap serves regions from the Go heap.
type Heap struct{}

// Acquire allocates n bytes backed by a uint64 slice so the region is
// word-aligned.
func (Heap) Acquire(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	words := make([]uint64, (n+7)/8)
	return unsafe.Slice((*byte)(unsafe.Pointer(unsafe.SliceData(words))), n), nil
}

// Release is a no-op; the garbage collector reclaims the region.
func (Heap) Release([]byte) error { return nil }

// base returns the address of the first byte of b.
func base(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}

// Compile-time interface check
var _ Backing = Heap{}
