package pool

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/joshuapare/chunkpool/backing"
)

// Chain is a growable sequence of pools sharing one chunk size. The first
// pool is the head; further pools are appended when every pool is full.
type Chain struct {
	pools []pool

	chunkCount int
	chunkSize  int

	strategy Strategy
	mem      backing.Backing
	log      *slog.Logger

	destroyed bool
	calls     callStats
}

// callStats counts operations for Stats.
type callStats struct {
	allocCalls   int
	freeCalls    int
	growCalls    int
	growFailures int
	clearCalls   int
}

// New creates a chain holding a single pool of count chunks of size bytes.
// A nil opts uses DefaultOptions().
func New(count, size int, opts *Options) (*Chain, error) {
	o := DefaultOptions()
	if opts != nil {
		o = *opts
	}
	o = o.resolve()

	head, err := newPool(o.Backing, count, size, o.Logger)
	if err != nil {
		return nil, err
	}
	return &Chain{
		pools:      []pool{head},
		chunkCount: count,
		chunkSize:  size,
		strategy:   o.Strategy,
		mem:        o.Backing,
		log:        o.Logger,
	}, nil
}

// Allocate returns a free chunk of ChunkSize() bytes and marks it used,
// appending a new pool to the chain when every pool is full. The chunk's
// contents are whatever was last written there.
//
// A nil chain returns (nil, nil). If the chain must grow and the backing
// cannot supply memory, the error wraps backing.ErrExhausted and the chain
// is unchanged.
func (c *Chain) Allocate() ([]byte, error) {
	if c == nil {
		return nil, nil
	}
	if c.destroyed {
		return nil, ErrDestroyed
	}
	c.calls.allocCalls++

	i, err := c.firstWithFree()
	if err != nil {
		return nil, err
	}
	p := &c.pools[i]
	idx, ok := p.search(c.strategy)
	if !ok {
		panic(&InvariantError{
			Pool: i,
			Msg:  fmt.Sprintf("free count %d but bitmap has no free chunk", p.freeCount),
		})
	}
	return p.take(idx), nil
}

// firstWithFree walks the chain from the head and returns the index of the
// first pool with a free chunk, growing the chain if the tail is full.
func (c *Chain) firstWithFree() (int, error) {
	i := 0
	for {
		if c.pools[i].freeCount > 0 {
			return i, nil
		}
		if c.pools[i].next == noNext {
			return c.grow(i)
		}
		i = c.pools[i].next
	}
}

// grow appends a pool with the head's geometry after tail.
func (c *Chain) grow(tail int) (int, error) {
	p, err := newPool(c.mem, c.chunkCount, c.chunkSize, c.log)
	if err != nil {
		c.calls.growFailures++
		return 0, fmt.Errorf("pool: grow chain past %d pools: %w", len(c.pools), err)
	}
	c.pools = append(c.pools, p)
	idx := len(c.pools) - 1
	c.pools[tail].next = idx
	c.calls.growCalls++

	c.log.Debug("chain grown", "pools", len(c.pools), "total_chunks", len(c.pools)*c.chunkCount)
	return idx, nil
}

// Free returns chunk to the pool whose arena contains it. Only the address
// of the chunk's first byte matters; its length is ignored.
//
// Freeing an address outside every arena fails with ErrForeignChunk, one not
// on a chunk boundary with ErrMisaligned, and an already free chunk with
// ErrDoubleFree. A failed Free changes nothing. A nil chain is a no-op.
func (c *Chain) Free(chunk []byte) error {
	if c == nil {
		return nil
	}
	if c.destroyed {
		return ErrDestroyed
	}
	c.calls.freeCalls++
	return c.freeAddr(addrOf(chunk))
}

// freeAddr resolves addr to its pool and chunk index and marks it free.
func (c *Chain) freeAddr(addr uintptr) error {
	if addr == 0 {
		return fmt.Errorf("%w: nil chunk", ErrForeignChunk)
	}
	for i := 0; i != noNext; i = c.pools[i].next {
		p := &c.pools[i]
		if !p.contains(addr) {
			continue
		}
		off := int(addr - p.start)
		if off == len(p.arena) {
			// One past the end: no chunk of this pool starts here, but the
			// next arena might.
			continue
		}
		return p.put(off)
	}
	return fmt.Errorf("%w: 0x%x", ErrForeignChunk, addr)
}

// Clear marks every chunk of every pool free. Arenas are neither zeroed nor
// released, and the chain keeps its length. A nil or destroyed chain is a
// no-op.
func (c *Chain) Clear() {
	if c == nil || c.destroyed {
		return
	}
	c.calls.clearCalls++
	for i := 0; i != noNext; i = c.pools[i].next {
		c.pools[i].reset()
	}
}

// Destroy releases every pool of *cp back to its backing, head to tail, and
// sets *cp to nil. Other references to the same chain see ErrDestroyed from
// then on. Destroying a nil chain is a no-op.
//
// Every pool is released even if some releases fail; the failures are joined
// into the returned error.
func Destroy(cp **Chain) error {
	if cp == nil || *cp == nil {
		return nil
	}
	err := (*cp).destroy()
	*cp = nil
	return err
}

func (c *Chain) destroy() error {
	if c.destroyed {
		return nil
	}
	var errs []error
	pools := len(c.pools)
	for i := 0; i != noNext; i = c.pools[i].next {
		if err := c.pools[i].release(c.mem); err != nil {
			errs = append(errs, fmt.Errorf("pool %d: %w", i, err))
		}
	}
	c.pools = nil
	c.destroyed = true

	c.log.Debug("chain destroyed", "pools", pools)
	return errors.Join(errs...)
}

// Len returns the number of pools in the chain, 0 for a nil or destroyed chain.
func (c *Chain) Len() int {
	if c == nil {
		return 0
	}
	return len(c.pools)
}

// ChunkSize returns the size in bytes of every chunk in the chain.
func (c *Chain) ChunkSize() int {
	if c == nil {
		return 0
	}
	return c.chunkSize
}

// ChunkCount returns the number of chunks per pool.
func (c *Chain) ChunkCount() int {
	if c == nil {
		return 0
	}
	return c.chunkCount
}

// Strategy returns the configured search strategy.
func (c *Chain) Strategy() Strategy {
	if c == nil {
		return StrategySequential
	}
	return c.strategy
}

// Contains reports whether the first byte of chunk lies inside one of the
// chain's chunks, allocated or not.
func (c *Chain) Contains(chunk []byte) bool {
	if c == nil || c.destroyed {
		return false
	}
	addr := addrOf(chunk)
	if addr == 0 {
		return false
	}
	for i := 0; i != noNext; i = c.pools[i].next {
		p := &c.pools[i]
		if p.contains(addr) && int(addr-p.start) < len(p.arena) {
			return true
		}
	}
	return false
}
