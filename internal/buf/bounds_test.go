package buf

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddOverflowSafe(t *testing.T) {
	sum, ok := AddOverflowSafe(10, 5)
	require.True(t, ok)
	assert.Equal(t, 15, sum)

	_, ok = AddOverflowSafe(math.MaxInt, 1)
	assert.False(t, ok, "expected overflow when adding to MaxInt")

	_, ok = AddOverflowSafe(math.MinInt, -1)
	assert.False(t, ok, "expected underflow when subtracting from MinInt")
}

func TestMulOverflowSafe(t *testing.T) {
	cases := []struct {
		a, b int
		want int
		ok   bool
	}{
		{0, 5, 0, true},
		{4, 16, 64, true},
		{math.MaxInt, 1, math.MaxInt, true},
		{math.MaxInt/2 + 1, 2, 0, false},
		{-1, 4, 0, false},
		{4, -1, 0, false},
	}
	for _, tc := range cases {
		got, ok := MulOverflowSafe(tc.a, tc.b)
		assert.Equal(t, tc.ok, ok, "MulOverflowSafe(%d,%d)", tc.a, tc.b)
		if tc.ok {
			assert.Equal(t, tc.want, got)
		}
	}
}

func TestArenaSize(t *testing.T) {
	n, err := ArenaSize(4, 16)
	require.NoError(t, err)
	assert.Equal(t, 64, n)

	_, err = ArenaSize(0, 16)
	require.Error(t, err)
	_, err = ArenaSize(4, 0)
	require.Error(t, err)
	_, err = ArenaSize(math.MaxInt, 2)
	require.ErrorContains(t, err, "overflow")
}

func TestChunk(t *testing.T) {
	data := []byte{0, 1, 2, 3, 4, 5}

	got, ok := Chunk(data, 2, 2)
	require.True(t, ok)
	assert.Equal(t, []byte{2, 3}, got)
	assert.Equal(t, 2, cap(got), "capacity must be clipped to the chunk")

	_, ok = Chunk(data, 5, 2)
	assert.False(t, ok, "chunk extending past len must fail")
	_, ok = Chunk(data, -1, 1)
	assert.False(t, ok)
	_, ok = Chunk(data, 1, -1)
	assert.False(t, ok)
}
