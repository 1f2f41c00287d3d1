package backing

import "fmt"

// Tracking records every region handed out by an inner Backing. Releasing a
// region twice, or one it never handed out, fails with ErrNotOwned.
type Tracking struct {
	inner       Backing
	outstanding map[uintptr]int

	acquired int
	released int
}

// NewTracking wraps inner. A nil inner uses Heap.
func NewTracking(inner Backing) *Tracking {
	if inner == nil {
		inner = Heap{}
	}
	return &Tracking{inner: inner, outstanding: make(map[uintptr]int)}
}

// Acquire delegates to the inner backing and records the region.
func (t *Tracking) Acquire(n int) ([]byte, error) {
	b, err := t.inner.Acquire(n)
	if err != nil {
		return nil, err
	}
	t.outstanding[base(b)] = len(b)
	t.acquired++
	return b, nil
}

// Release forgets the region and delegates to the inner backing.
func (t *Tracking) Release(b []byte) error {
	if len(b) == 0 {
		return fmt.Errorf("%w: empty region", ErrNotOwned)
	}
	p := base(b)
	n, ok := t.outstanding[p]
	if !ok {
		return fmt.Errorf("%w: 0x%x", ErrNotOwned, p)
	}
	if n != len(b) {
		return fmt.Errorf("%w: 0x%x released with length %d, acquired with %d", ErrNotOwned, p, len(b), n)
	}
	delete(t.outstanding, p)
	t.released++
	return t.inner.Release(b)
}

// Outstanding returns the number of regions acquired but not yet released.
func (t *Tracking) Outstanding() int { return len(t.outstanding) }

// OutstandingBytes returns the total length of unreleased regions.
func (t *Tracking) OutstandingBytes() int {
	total := 0
	for _, n := range t.outstanding {
		total += n
	}
	return total
}

// Acquired returns the number of successful Acquire calls.
func (t *Tracking) Acquired() int { return t.acquired }

// Released returns the number of successful Release calls.
func (t *Tracking) Released() int { return t.released }

var _ Backing = (*Tracking)(nil)
