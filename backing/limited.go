package backing

import "fmt"

// Limited caps the number of bytes outstanding on an inner Backing.
type Limited struct {
	inner Backing
	max   int
	used  int
}

// NewLimited wraps inner so that at most maxBytes are outstanding at once.
// A nil inner uses Heap.
func NewLimited(inner Backing, maxBytes int) *Limited {
	if inner == nil {
		inner = Heap{}
	}
	return &Limited{inner: inner, max: maxBytes}
}

// Acquire fails with ErrExhausted when n more bytes would exceed the cap.
func (l *Limited) Acquire(n int) ([]byte, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, n)
	}
	if n > l.max-l.used {
		return nil, fmt.Errorf("%w: need %d bytes, %d of %d in use", ErrExhausted, n, l.used, l.max)
	}
	b, err := l.inner.Acquire(n)
	if err != nil {
		return nil, err
	}
	l.used += len(b)
	return b, nil
}

// Release returns b to the inner backing and credits its length.
func (l *Limited) Release(b []byte) error {
	if err := l.inner.Release(b); err != nil {
		return err
	}
	l.used -= len(b)
	return nil
}

// InUse returns the number of bytes currently outstanding.
func (l *Limited) InUse() int { return l.used }

// Max returns the configured cap in bytes.
func (l *Limited) Max() int { return l.max }

var _ Backing = (*Limited)(nil)
