package pool

import "fmt"

// PoolStats describes one pool of a chain.
type PoolStats struct {
	ChunkCount  int `json:"chunk_count"`
	FreeChunks  int `json:"free_chunks"`
	UsedChunks  int `json:"used_chunks"`
	ArenaBytes  int `json:"arena_bytes"`
	BitmapBytes int `json:"bitmap_bytes"`
}

// Stats is a snapshot of a chain's occupancy and call counters.
type Stats struct {
	Strategy      string  `json:"strategy"`
	Pools         int     `json:"pools"`
	ChunkSize     int     `json:"chunk_size"`
	ChunksPerPool int     `json:"chunks_per_pool"`
	TotalChunks   int     `json:"total_chunks"`
	FreeChunks    int     `json:"free_chunks"`
	UsedChunks    int     `json:"used_chunks"`
	ArenaBytes    int     `json:"arena_bytes"`
	BitmapBytes   int     `json:"bitmap_bytes"`
	Utilization   float64 `json:"utilization"` // UsedChunks / TotalChunks

	AllocCalls   int `json:"alloc_calls"`
	FreeCalls    int `json:"free_calls"`
	GrowCalls    int `json:"grow_calls"`
	GrowFailures int `json:"grow_failures"`
	ClearCalls   int `json:"clear_calls"`

	PerPool []PoolStats `json:"per_pool"`
}

// Stats returns a snapshot of the chain. A nil or destroyed chain yields the
// zero Stats apart from call counters.
func (c *Chain) Stats() Stats {
	if c == nil {
		return Stats{}
	}
	s := Stats{
		Strategy:      c.strategy.String(),
		ChunkSize:     c.chunkSize,
		ChunksPerPool: c.chunkCount,
		AllocCalls:    c.calls.allocCalls,
		FreeCalls:     c.calls.freeCalls,
		GrowCalls:     c.calls.growCalls,
		GrowFailures:  c.calls.growFailures,
		ClearCalls:    c.calls.clearCalls,
	}
	if c.destroyed {
		return s
	}
	for i := 0; i != noNext; i = c.pools[i].next {
		p := &c.pools[i]
		ps := PoolStats{
			ChunkCount:  p.chunkCount,
			FreeChunks:  p.freeCount,
			UsedChunks:  p.chunkCount - p.freeCount,
			ArenaBytes:  len(p.arena),
			BitmapBytes: len(p.bitmapMem),
		}
		s.Pools++
		s.TotalChunks += ps.ChunkCount
		s.FreeChunks += ps.FreeChunks
		s.UsedChunks += ps.UsedChunks
		s.ArenaBytes += ps.ArenaBytes
		s.BitmapBytes += ps.BitmapBytes
		s.PerPool = append(s.PerPool, ps)
	}
	if s.TotalChunks > 0 {
		s.Utilization = float64(s.UsedChunks) / float64(s.TotalChunks)
	}
	return s
}

// Verify checks every pool's bookkeeping against its bitmap and the chain's
// links. It returns an *InvariantError describing the first problem found.
func (c *Chain) Verify() error {
	if c == nil {
		return nil
	}
	if c.destroyed {
		return ErrDestroyed
	}

	seen := make([]bool, len(c.pools))
	for i := 0; i != noNext; i = c.pools[i].next {
		if i < 0 || i >= len(c.pools) {
			return &InvariantError{Pool: i, Msg: "link points outside the chain"}
		}
		if seen[i] {
			return &InvariantError{Pool: i, Msg: "chain links form a cycle"}
		}
		seen[i] = true

		p := &c.pools[i]
		switch {
		case p.chunkSize != c.chunkSize:
			return &InvariantError{Pool: i, Msg: fmt.Sprintf("chunk size %d, chain uses %d", p.chunkSize, c.chunkSize)}
		case p.freeCount < 0 || p.freeCount > p.chunkCount:
			return &InvariantError{Pool: i, Msg: fmt.Sprintf("free count %d outside [0,%d]", p.freeCount, p.chunkCount)}
		case len(p.arena) != p.chunkCount*p.chunkSize:
			return &InvariantError{Pool: i, Msg: fmt.Sprintf("arena is %d bytes, want %d", len(p.arena), p.chunkCount*p.chunkSize)}
		}
		if free := p.bits.CountFree(); free != p.freeCount {
			return &InvariantError{Pool: i, Msg: fmt.Sprintf("bitmap has %d free bits, free count is %d", free, p.freeCount)}
		}
	}
	for i, ok := range seen {
		if !ok {
			return &InvariantError{Pool: i, Msg: "pool unreachable from head"}
		}
	}
	return nil
}

// Occupancy returns, for every pool in chain order, whether each chunk is
// free. It returns nil for a nil or destroyed chain.
func (c *Chain) Occupancy() [][]bool {
	if c == nil || c.destroyed {
		return nil
	}
	out := make([][]bool, 0, len(c.pools))
	for i := 0; i != noNext; i = c.pools[i].next {
		p := &c.pools[i]
		free := make([]bool, p.chunkCount)
		for j := range free {
			free[j] = p.bits.IsFree(j)
		}
		out = append(out, free)
	}
	return out
}
