package pool

import (
	"errors"
	"fmt"
	"log/slog"
	"unsafe"

	"github.com/joshuapare/chunkpool/backing"
	"github.com/joshuapare/chunkpool/internal/bitmap"
	"github.com/joshuapare/chunkpool/internal/buf"
)

// noNext marks the tail pool of a chain.
const noNext = -1

// pool is one arena plus its occupancy bitmap. Pools live in Chain.pools and
// link to their successor by index.
type pool struct {
	chunkCount int
	chunkSize  int
	freeCount  int

	bits      *bitmap.Bitmap
	bitmapMem []byte // region backing bits, returned to the Backing on destroy
	arena     []byte
	start     uintptr // address of arena[0]

	next int
}

// newPool acquires a bitmap and an arena from b. On failure nothing acquired
// here is left outstanding.
func newPool(b backing.Backing, count, size int, log *slog.Logger) (pool, error) {
	if count < 1 || size < 1 {
		return pool{}, fmt.Errorf("%w: count=%d size=%d", ErrInvalidSize, count, size)
	}
	arenaLen, err := buf.ArenaSize(count, size)
	if err != nil {
		return pool{}, fmt.Errorf("%w: %v", ErrOverflow, err)
	}

	bitmapMem, err := b.Acquire(bitmap.BytesFor(count))
	if err != nil {
		return pool{}, fmt.Errorf("pool: acquire bitmap: %w", err)
	}
	bits, err := bitmap.Wrap(bitmapMem, count)
	if err != nil {
		return pool{}, errors.Join(fmt.Errorf("pool: bitmap: %w", err), b.Release(bitmapMem))
	}

	arena, err := b.Acquire(arenaLen)
	if err != nil {
		return pool{}, errors.Join(fmt.Errorf("pool: acquire arena: %w", err), b.Release(bitmapMem))
	}

	log.Debug("pool created",
		"chunks", count,
		"chunk_size", size,
		"bitmap_bytes", len(bitmapMem),
		"arena_bytes", arenaLen)

	return pool{
		chunkCount: count,
		chunkSize:  size,
		freeCount:  count,
		bits:       bits,
		bitmapMem:  bitmapMem,
		arena:      arena,
		start:      addrOf(arena),
		next:       noNext,
	}, nil
}

// search returns a free chunk index using the given strategy.
func (p *pool) search(s Strategy) (int, bool) {
	if s == StrategyHeuristic {
		return p.bits.FirstFrom((p.chunkCount - p.freeCount) / bitmap.WordBits)
	}
	return p.bits.First()
}

// take marks chunk idx used and returns its bytes.
func (p *pool) take(idx int) []byte {
	p.bits.MarkUsed(idx)
	p.freeCount--
	chunk, _ := buf.Chunk(p.arena, idx*p.chunkSize, p.chunkSize)
	return chunk
}

// contains reports whether addr lies in [start, start+len(arena)].
func (p *pool) contains(addr uintptr) bool {
	return addr >= p.start && addr <= p.start+uintptr(len(p.arena))
}

// put marks the chunk at byte offset off free.
func (p *pool) put(off int) error {
	if off%p.chunkSize != 0 {
		return fmt.Errorf("%w: offset %d, chunk size %d", ErrMisaligned, off, p.chunkSize)
	}
	idx := off / p.chunkSize
	if p.bits.IsFree(idx) {
		return fmt.Errorf("%w: index %d", ErrDoubleFree, idx)
	}
	p.bits.MarkFree(idx)
	p.freeCount++
	return nil
}

// reset marks every chunk free without touching the arena.
func (p *pool) reset() {
	p.bits.Reset()
	p.freeCount = p.chunkCount
}

// release hands the arena and bitmap back to b.
func (p *pool) release(b backing.Backing) error {
	arenaErr := b.Release(p.arena)
	bitmapErr := b.Release(p.bitmapMem)
	p.arena, p.bitmapMem, p.bits = nil, nil, nil
	return errors.Join(arenaErr, bitmapErr)
}

// addrOf returns the address of the first byte of b, or 0 for a nil slice.
func addrOf(b []byte) uintptr {
	return uintptr(unsafe.Pointer(unsafe.SliceData(b)))
}
