//go:build linux || darwin || freebsd

package backing

import (
	"errors"
	"fmt"

	"golang.org/x/sys/unix"
)

// Mmap serves regions from anonymous private memory mappings. Mapped pages
// live outside the Go heap and are returned to the kernel on Release.
type Mmap struct{}

// Acquire maps n bytes of zeroed, page-aligned memory.
func (Mmap) Acquire(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	data, err := unix.Mmap(-1, 0, n, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		if errors.Is(err, unix.ENOMEM) {
			return nil, fmt.Errorf("%w: mmap %d bytes: %v", ErrExhausted, n, err)
		}
		return nil, fmt.Errorf("backing: mmap %d bytes: %w", n, err)
	}
	return data, nil
}

// Release unmaps a region returned by Acquire.
func (Mmap) Release(b []byte) error {
	if len(b) == 0 {
		return nil
	}
	err := unix.Munmap(b)
	if errors.Is(err, unix.EINVAL) {
		// x/sys returns EINVAL for a region its mapper no longer tracks,
		// which means it was already unmapped.
		return nil
	}
	return err
}

// MmapAvailable reports whether Mmap uses real memory mappings.
const MmapAvailable = true

var _ Backing = Mmap{}
