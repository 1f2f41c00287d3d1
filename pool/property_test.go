package pool

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_Property_RandomAllocFree performs random allocate/free/clear steps and
// checks the capacity invariant and chunk ownership after each one.
func Test_Property_RandomAllocFree(t *testing.T) {
	// 37 fits one bitmap word; 65 and 300 make the heuristic start past word
	// 0 and wrap around.
	for _, count := range []int{37, 65, 300} {
		for _, s := range strategies {
			t.Run(fmt.Sprintf("%s/%d", s, count), func(t *testing.T) {
				randomWalk(t, count, s)
			})
		}
	}
}

// randomWalk runs 5000 seeded steps on a chain of count-chunk pools.
func randomWalk(t *testing.T, count int, s Strategy) {
	t.Helper()
	c, _ := newTestChain(t, count, 24, s)
	rng := rand.New(rand.NewSource(42)) // Fixed seed for reproducibility

	live := make(map[uintptr][]byte)
	for i := range 5000 {
		switch op := rng.Intn(20); {
		case op < 11: // Allocate
			chunk, err := c.Allocate()
			require.NoError(t, err, "step %d", i)
			addr := addrOf(chunk)
			_, dup := live[addr]
			require.False(t, dup, "step %d: chunk 0x%x handed out twice", i, addr)
			live[addr] = chunk

		case op < 19: // Free
			for addr, chunk := range live {
				require.NoError(t, c.Free(chunk), "step %d", i)
				delete(live, addr)
				break
			}

		default: // Clear
			c.Clear()
			clear(live)
		}

		requireInvariants(t, c)
		st := c.Stats()
		require.Equal(t, len(live), st.UsedChunks, "step %d: used chunks", i)
	}
}

// Test_Property_StrategiesAgreeOnSequentialUse checks both strategies hand out
// the same addresses when chunks are taken and returned in order.
func Test_Property_StrategiesAgreeOnSequentialUse(t *testing.T) {
	seq, _ := newTestChain(t, 200, 8, StrategySequential)
	heur, _ := newTestChain(t, 200, 8, StrategyHeuristic)

	var seqChunks, heurChunks [][]byte
	for range 150 {
		a, err := seq.Allocate()
		require.NoError(t, err)
		b, err := heur.Allocate()
		require.NoError(t, err)
		require.Equal(t, addrOf(a)-seq.pools[0].start, addrOf(b)-heur.pools[0].start)
		seqChunks = append(seqChunks, a)
		heurChunks = append(heurChunks, b)
	}
	// Return the most recent chunks, then take them again.
	for i := 149; i >= 100; i-- {
		require.NoError(t, seq.Free(seqChunks[i]))
		require.NoError(t, heur.Free(heurChunks[i]))
	}
	for range 50 {
		a, err := seq.Allocate()
		require.NoError(t, err)
		b, err := heur.Allocate()
		require.NoError(t, err)
		require.Equal(t, addrOf(a)-seq.pools[0].start, addrOf(b)-heur.pools[0].start)
	}
}
