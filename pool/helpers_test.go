package pool

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/joshuapare/chunkpool/backing"
)

// failAfter succeeds for the first ok acquisitions and fails every one after.
type failAfter struct {
	inner backing.Backing
	ok    int
	calls int
}

func (f *failAfter) Acquire(n int) ([]byte, error) {
	f.calls++
	if f.calls > f.ok {
		return nil, backing.ErrExhausted
	}
	return f.inner.Acquire(n)
}

func (f *failAfter) Release(b []byte) error { return f.inner.Release(b) }

// newTestChain creates a chain on a tracking heap backing and destroys it at
// test end, asserting nothing leaked.
func newTestChain(t testing.TB, count, size int, strategy Strategy) (*Chain, *backing.Tracking) {
	t.Helper()
	tr := backing.NewTracking(nil)
	c, err := New(count, size, &Options{Strategy: strategy, Backing: tr})
	require.NoError(t, err)
	t.Cleanup(func() {
		require.NoError(t, Destroy(&c))
		require.Zero(t, tr.Outstanding(), "regions leaked after Destroy")
	})
	return c, tr
}

// requireInvariants asserts the capacity invariant for every pool.
func requireInvariants(t testing.TB, c *Chain) {
	t.Helper()
	require.NoError(t, c.Verify())
}

// poolOf returns the index of the pool whose arena holds chunk, or -1.
func poolOf(c *Chain, chunk []byte) int {
	addr := addrOf(chunk)
	for i := range c.pools {
		p := &c.pools[i]
		if addr >= p.start && addr < p.start+uintptr(len(p.arena)) {
			return i
		}
	}
	return -1
}

// fill allocates n chunks and returns them in order.
func fill(t testing.TB, c *Chain, n int) [][]byte {
	t.Helper()
	out := make([][]byte, 0, n)
	for i := range n {
		chunk, err := c.Allocate()
		require.NoError(t, err, "Allocate %d", i)
		out = append(out, chunk)
	}
	return out
}

// strategies lists every search strategy for table tests.
var strategies = []Strategy{StrategySequential, StrategyHeuristic}
