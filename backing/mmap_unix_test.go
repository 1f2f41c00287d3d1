//go:build linux || darwin || freebsd

package backing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMmap_AcquireRelease(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping mmap test in short mode")
	}
	require.True(t, MmapAvailable)

	b, err := Mmap{}.Acquire(10000)
	require.NoError(t, err)
	assert.Len(t, b, 10000)
	assert.Zero(t, base(b)%8)

	// Mapped memory must be writable and start zeroed.
	for i := range b {
		require.Zero(t, b[i])
	}
	b[0], b[len(b)-1] = 0xAB, 0xCD
	assert.Equal(t, byte(0xCD), b[9999])

	require.NoError(t, Mmap{}.Release(b))
	require.NoError(t, Mmap{}.Release(b), "double unmap is a no-op")
}

func TestMmap_InvalidSize(t *testing.T) {
	_, err := Mmap{}.Acquire(0)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestMmap_UnderTracking(t *testing.T) {
	tr := NewTracking(Mmap{})
	b, err := tr.Acquire(4096)
	require.NoError(t, err)
	require.NoError(t, tr.Release(b))
	assert.Zero(t, tr.Outstanding())
}
