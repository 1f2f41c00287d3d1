//go:build !linux && !darwin && !freebsd

package backing

// Mmap falls back to the Go heap when anonymous mappings are not available.
type Mmap struct{ Heap }

// MmapAvailable reports whether Mmap uses real memory mappings.
const MmapAvailable = false

var _ Backing = Mmap{}
