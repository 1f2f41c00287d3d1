// Package backing supplies the raw memory that chunk pools carve into chunks.
//
// A Backing hands out byte slices of an exact length and takes them back.
// Pools acquire two regions per pool, the occupancy bitmap and the arena, and
// release both when the chain is destroyed.
//
// # Implementations
//
//   - Heap: memory from the Go heap, 8-byte aligned. Release is a no-op and
//     the garbage collector reclaims the region once unreferenced.
//   - Mmap: anonymous private mappings obtained with mmap(2) and returned
//     with munmap(2). Falls back to Heap on platforms without mmap.
//   - Limited: caps the total bytes outstanding on another Backing and fails
//     with ErrExhausted past the cap.
//   - Tracking: records every outstanding region so leaks and double
//     releases can be detected.
//
// # Pointers
//
// Neither Heap nor Mmap memory is scanned by the garbage collector for
// pointers. Values stored in it must not be the only reference to Go heap
// objects.
package backing
