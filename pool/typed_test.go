package pool

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/chunkpool/backing"
)

// pointNode is a list node whose links only ever point into the same chain.
type pointNode struct {
	x, y       int
	next, prev *pointNode
}

// TestTyped_PointList builds a doubly linked list one node past the first
// pool's capacity and checks the chain grew by exactly one pool.
func TestTyped_PointList(t *testing.T) {
	const nodeCount = 100
	tr := backing.NewTracking(nil)

	nodes, err := NewFor[pointNode](nodeCount, &Options{Backing: tr})
	require.NoError(t, err)
	require.Equal(t, int(unsafe.Sizeof(pointNode{})), nodes.ChunkSize())
	require.Equal(t, nodeCount, nodes.pools[0].freeCount)

	head, err := Alloc[pointNode](nodes)
	require.NoError(t, err)
	head.x, head.y = 1, 1

	cur := head
	for i := range nodeCount {
		next, err := Alloc[pointNode](nodes)
		require.NoError(t, err)
		next.x = cur.x
		if cur.prev != nil {
			next.x += cur.prev.x
		}
		next.y = i
		cur.next = next
		next.prev = cur
		cur = next
	}

	require.Equal(t, 2, nodes.Len())
	assert.Zero(t, nodes.pools[0].freeCount)
	assert.Equal(t, nodeCount-1, nodes.pools[1].freeCount)
	assert.Equal(t, nodes.pools[0].chunkSize, nodes.pools[1].chunkSize)
	assert.Equal(t, nodeCount, nodes.pools[1].chunkCount)

	// Walk the list: x follows the Fibonacci recurrence from the head.
	n := 0
	a, b := 0, 1
	for p := head; p != nil; p = p.next {
		require.Equal(t, b, p.x, "node %d", n)
		a, b = b, a+b
		if b > 1<<40 {
			break
		}
		n++
	}

	require.NoError(t, Release(nodes, cur))
	assert.Equal(t, nodeCount, nodes.pools[1].freeCount)

	require.NoError(t, Destroy(&nodes))
	assert.Nil(t, nodes)
	assert.Zero(t, tr.Outstanding())
}

func TestTyped_AllocZeroes(t *testing.T) {
	c, _ := newTestChain(t, 2, int(unsafe.Sizeof(pointNode{})), StrategySequential)

	raw, err := c.Allocate()
	require.NoError(t, err)
	for i := range raw {
		raw[i] = 0xFF
	}
	require.NoError(t, c.Free(raw))

	p, err := Alloc[pointNode](c)
	require.NoError(t, err)
	assert.Equal(t, pointNode{}, *p)
}

func TestTyped_ChunkTooSmall(t *testing.T) {
	c, _ := newTestChain(t, 2, 4, StrategySequential)
	_, err := Alloc[pointNode](c)
	require.ErrorIs(t, err, ErrChunkTooSmall)
	assert.Equal(t, 2, c.pools[0].freeCount)
}

func TestTyped_NilAndForeign(t *testing.T) {
	v, err := Alloc[int](nil)
	assert.NoError(t, err)
	assert.Nil(t, v)
	assert.NoError(t, Release[int](nil, new(int)))

	c, _ := newTestChain(t, 2, 8, StrategySequential)
	require.ErrorIs(t, Release[int](c, nil), ErrForeignChunk)
	require.ErrorIs(t, Release(c, new(int)), ErrForeignChunk)
}

func TestNewFor_ZeroSized(t *testing.T) {
	_, err := NewFor[struct{}](4, nil)
	require.ErrorIs(t, err, ErrInvalidSize)
}

func TestTyped_MisalignedChunkSize(t *testing.T) {
	c, _ := newTestChain(t, 4, 9, StrategySequential)
	_, err := Alloc[uint64](c)
	require.ErrorIs(t, err, ErrMisaligned)
	assert.Equal(t, 4, c.pools[0].freeCount, "a rejected Alloc takes no chunk")
}
