// Package buf contains overflow-safe sizing and slicing helpers for arenas.
package buf

import (
	"fmt"
	"math"
)

// AddOverflowSafe adds a and b, returning ok = false when the result would overflow int.
func AddOverflowSafe(a, b int) (int, bool) {
	switch {
	case b > 0 && a > math.MaxInt-b:
		return 0, false
	case b < 0 && a < math.MinInt-b:
		return 0, false
	default:
		return a + b, true
	}
}

// MulOverflowSafe multiplies two non-negative ints, returning ok = false when
// the result would overflow int or either operand is negative.
func MulOverflowSafe(a, b int) (int, bool) {
	if a < 0 || b < 0 {
		return 0, false
	}
	if a == 0 || b == 0 {
		return 0, true
	}
	if a > math.MaxInt/b {
		return 0, false
	}
	return a * b, true
}

// ArenaSize returns count*size, the byte length of an arena holding count
// chunks of size bytes each. Both must be >= 1.
func ArenaSize(count, size int) (int, error) {
	if count < 1 {
		return 0, fmt.Errorf("chunk count must be >= 1, got %d", count)
	}
	if size < 1 {
		return 0, fmt.Errorf("chunk size must be >= 1, got %d", size)
	}
	total, ok := MulOverflowSafe(count, size)
	if !ok {
		return 0, fmt.Errorf("overflow: count=%d * size=%d", count, size)
	}
	return total, nil
}

// Chunk returns b[off:off+n] with its capacity clipped to n, so appends to
// the result can never spill into the bytes that follow it.
func Chunk(b []byte, off, n int) ([]byte, bool) {
	if off < 0 || n < 0 || off > len(b) {
		return nil, false
	}
	end, ok := AddOverflowSafe(off, n)
	if !ok || end > len(b) {
		return nil, false
	}
	return b[off:end:end], true
}
