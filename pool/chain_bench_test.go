package pool

import (
	"testing"

	"github.com/joshuapare/chunkpool/backing"
)

// benchChain creates a chain for benchmarks and destroys it when b ends.
func benchChain(b *testing.B, count, size int, s Strategy, mem backing.Backing) *Chain {
	b.Helper()
	c, err := New(count, size, &Options{Strategy: s, Backing: mem})
	if err != nil {
		b.Fatal(err)
	}
	b.Cleanup(func() { _ = Destroy(&c) })
	return c
}

// benchSteadyState keeps the chain half full and cycles the most recent chunk.
func benchSteadyState(b *testing.B, s Strategy) {
	c := benchChain(b, 4096, 64, s, backing.Heap{})
	chunks := make([][]byte, 0, 2048)
	for range 2048 {
		chunk, _ := c.Allocate()
		chunks = append(chunks, chunk)
	}
	b.ResetTimer()
	for i := range b.N {
		j := i % len(chunks)
		if err := c.Free(chunks[j]); err != nil {
			b.Fatal(err)
		}
		chunk, err := c.Allocate()
		if err != nil {
			b.Fatal(err)
		}
		chunks[j] = chunk
	}
}

func Benchmark_AllocFree_SteadyState_Sequential(b *testing.B) {
	benchSteadyState(b, StrategySequential)
}

func Benchmark_AllocFree_SteadyState_Heuristic(b *testing.B) {
	benchSteadyState(b, StrategyHeuristic)
}

// benchFillClear fills the chain then clears it, the per-frame reset pattern.
func benchFillClear(b *testing.B, s Strategy) {
	c := benchChain(b, 1024, 32, s, backing.Heap{})
	b.ResetTimer()
	for range b.N {
		for range 1024 {
			if _, err := c.Allocate(); err != nil {
				b.Fatal(err)
			}
		}
		c.Clear()
	}
}

func Benchmark_FillClear_Sequential(b *testing.B) { benchFillClear(b, StrategySequential) }

func Benchmark_FillClear_Heuristic(b *testing.B) { benchFillClear(b, StrategyHeuristic) }

func Benchmark_Free_DeepChain(b *testing.B) {
	c := benchChain(b, 64, 16, StrategySequential, backing.Heap{})
	var chunks [][]byte
	for range 64 * 32 {
		chunk, _ := c.Allocate()
		chunks = append(chunks, chunk)
	}
	last := chunks[len(chunks)-1]
	b.ResetTimer()
	for range b.N {
		if err := c.Free(last); err != nil {
			b.Fatal(err)
		}
		chunk, err := c.Allocate()
		if err != nil {
			b.Fatal(err)
		}
		last = chunk
	}
}
