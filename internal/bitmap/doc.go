// Package bitmap provides the fixed-size occupancy bitmap used by chunk pools.
//
// # Encoding
//
// Bits are packed into 64-bit words, one bit per chunk. A set bit means the
// chunk is free, a clear bit means it is in use:
//
//	word  = i / 64
//	bit   = i % 64
//	free  = words[word]>>bit&1 == 1
//
// A word with no free chunk is therefore zero, and the lowest free chunk in a
// non-zero word is its lowest set bit. Padding bits past Len() in the last
// word are kept clear so they can never be reported as free.
//
// # Search Strategies
//
//   - First: sequential scan from word 0, skipping zero words.
//   - FirstFrom: scan starting at an arbitrary word, wrapping around to 0 and
//     visiting every word exactly once.
//
// Both strategies return the lowest free index they encounter and reject any
// index >= Len().
//
// # Thread Safety
//
// Bitmap is not safe for concurrent use.
package bitmap
