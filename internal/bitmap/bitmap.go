package bitmap

import (
	"fmt"
	"math/bits"
	"unsafe"
)

const (
	// WordBits is the number of chunks tracked by one bitmap word.
	WordBits = 64

	// wordBytes is the in-memory size of one word.
	wordBytes = WordBits / 8

	// allFree is a word with every chunk free.
	allFree = ^uint64(0)
)

// Bitmap tracks free/used state for a fixed number of chunks.
type Bitmap struct {
	words []uint64
	n     int
}

// WordsFor returns the number of words needed to hold n bits.
func WordsFor(n int) int {
	return (n + WordBits - 1) / WordBits
}

// BytesFor returns the number of bytes of backing memory needed to hold n bits.
func BytesFor(n int) int {
	return WordsFor(n) * wordBytes
}

// New allocates a bitmap of n bits on the Go heap with every bit free.
func New(n int) (*Bitmap, error) {
	if n < 1 {
		return nil, ErrEmpty
	}
	b := &Bitmap{words: make([]uint64, WordsFor(n)), n: n}
	b.Reset()
	return b, nil
}

// Wrap builds a bitmap of n bits on top of buf, which must be 8-byte aligned
// and at least BytesFor(n) long. Every bit is reset to free. The bitmap
// aliases buf; the caller keeps ownership of the memory.
func Wrap(buf []byte, n int) (*Bitmap, error) {
	if n < 1 {
		return nil, ErrEmpty
	}
	need := BytesFor(n)
	if len(buf) < need {
		return nil, fmt.Errorf("%w: have %d bytes, need %d", ErrShortBuffer, len(buf), need)
	}
	if uintptr(unsafe.Pointer(unsafe.SliceData(buf)))%wordBytes != 0 {
		return nil, fmt.Errorf("bitmap: buffer is not %d-byte aligned", wordBytes)
	}
	words := unsafe.Slice((*uint64)(unsafe.Pointer(unsafe.SliceData(buf))), WordsFor(n))
	b := &Bitmap{words: words, n: n}
	b.Reset()
	return b, nil
}

// Len returns the number of tracked chunks.
func (b *Bitmap) Len() int { return b.n }

// Words returns the number of 64-bit words.
func (b *Bitmap) Words() int { return len(b.words) }

// Size returns the size of the word storage in bytes.
func (b *Bitmap) Size() int { return len(b.words) * wordBytes }

// Reset marks every chunk free. Padding bits in the last word stay clear.
func (b *Bitmap) Reset() {
	for i := range b.words {
		b.words[i] = allFree
	}
	if tail := b.n % WordBits; tail != 0 {
		b.words[len(b.words)-1] = allFree >> (WordBits - tail)
	}
}

// IsFree reports whether chunk i is free.
func (b *Bitmap) IsFree(i int) bool {
	b.check(i)
	return b.words[i/WordBits]>>(i%WordBits)&1 == 1
}

// MarkUsed flips chunk i to the used state.
func (b *Bitmap) MarkUsed(i int) {
	b.check(i)
	b.words[i/WordBits] &^= 1 << (i % WordBits)
}

// MarkFree flips chunk i to the free state.
func (b *Bitmap) MarkFree(i int) {
	b.check(i)
	b.words[i/WordBits] |= 1 << (i % WordBits)
}

// CountFree returns the number of free chunks.
func (b *Bitmap) CountFree() int {
	total := 0
	for _, w := range b.words {
		total += bits.OnesCount64(w)
	}
	return total
}

// First returns the lowest free chunk index, scanning words from 0.
func (b *Bitmap) First() (int, bool) {
	for wi, w := range b.words {
		if w == 0 {
			continue
		}
		if idx, ok := b.lowest(wi, w); ok {
			return idx, true
		}
	}
	return 0, false
}

// FirstFrom scans for a free chunk starting at word start, wrapping back to
// word 0 after the last word. Every word is visited exactly once. A start
// outside [0, Words()) is clamped into range.
func (b *Bitmap) FirstFrom(start int) (int, bool) {
	nw := len(b.words)
	if start < 0 {
		start = 0
	}
	if start >= nw {
		start = nw - 1
	}
	for step := range nw {
		wi := start + step
		if wi >= nw {
			wi -= nw
		}
		w := b.words[wi]
		if w == 0 {
			continue
		}
		if idx, ok := b.lowest(wi, w); ok {
			return idx, true
		}
	}
	return 0, false
}

// lowest resolves the lowest set bit of word w at position wi to a chunk
// index, rejecting indexes produced by word-boundary padding.
func (b *Bitmap) lowest(wi int, w uint64) (int, bool) {
	idx := wi*WordBits + bits.TrailingZeros64(w)
	if idx >= b.n {
		return 0, false
	}
	return idx, true
}

func (b *Bitmap) check(i int) {
	if i < 0 || i >= b.n {
		panic(fmt.Sprintf("bitmap: index %d out of range [0,%d)", i, b.n))
	}
}
