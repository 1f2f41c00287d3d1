// Package pool provides a fixed-size chunk allocator that grows by chaining pools.
//
// # Overview
//
// A Chain hands out equally sized chunks carved from preallocated arenas. Each
// pool in the chain owns one arena of ChunkCount()*ChunkSize() bytes and a
// bitmap with one bit per chunk. When every pool is full, Allocate appends a
// new pool with the same geometry as the first one. The chain only grows.
//
// # Usage Example
//
//	c, err := pool.New(128, 64, nil)
//	if err != nil {
//	    return err
//	}
//	defer pool.Destroy(&c)
//
//	chunk, err := c.Allocate()
//	if err != nil {
//	    return err
//	}
//	copy(chunk, payload)
//
//	// Later, hand the chunk back
//	err = c.Free(chunk)
//
// Typed values can be stored directly in chunks:
//
//	nodes, err := pool.NewFor[node](100, nil)
//	n, err := pool.Alloc[node](nodes)
//	err = pool.Release(nodes, n)
//
// # Chunk Resolution
//
// A chunk carries no header. Free recovers the owning pool and index purely
// from the chunk's address:
//
//	pool  = first pool with arenaStart <= addr <= arenaStart+len(arena)
//	index = (addr - arenaStart) / chunkSize
//
// # Misuse
//
// Free rejects addresses outside every arena (ErrForeignChunk), addresses
// that do not sit on a chunk boundary (ErrMisaligned) and chunks that are
// already free (ErrDoubleFree). Rejected calls change nothing. Writing to a
// chunk after freeing it cannot be detected.
//
// # Search Strategies
//
//   - StrategySequential: scan bitmap words from the start (default)
//   - StrategyHeuristic: start near (chunkCount-freeCount)/64 and wrap around
//
// # Thread Safety
//
// Chain is not thread-safe. Callers must synchronize access externally.
//
// # Related Packages
//
//   - github.com/joshuapare/chunkpool/internal/bitmap: occupancy bitmap and scans
//   - github.com/joshuapare/chunkpool/backing: heap and mmap arena memory
package pool
