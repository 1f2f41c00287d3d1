package main

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkpool/pool"
)

var (
	compareChunks  int
	compareSize    int
	compareOps     int
	comparePattern string
	compareSeed    int64
)

func init() {
	cmd := newCompareCmd()
	cmd.Flags().IntVar(&compareChunks, "chunks", 4096, "Chunks per pool")
	cmd.Flags().IntVar(&compareSize, "size", 64, "Chunk size in bytes")
	cmd.Flags().IntVar(&compareOps, "ops", 1_000_000, "Free/allocate pairs to time")
	cmd.Flags().StringVar(&comparePattern, "pattern", "lifo", "Workload: lifo, fifo, random or fill")
	cmd.Flags().Int64Var(&compareSeed, "seed", 1, "Seed for the random pattern")
	rootCmd.AddCommand(cmd)
}

func newCompareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Time the sequential and heuristic searches on one workload",
		Long: `The compare command runs the same workload against a chain using the
sequential search and one using the heuristic search, then prints the time
per operation for each. The --strategy flag is ignored.

Patterns:
  lifo    half-fill a pool, then repeatedly free and reallocate the newest chunk
  fifo    half-fill a pool, then repeatedly free and reallocate the oldest chunk
  random  half-fill a pool, then free and reallocate random chunks
  fill    fill a pool completely, then clear it

Example:
  chunkctl compare
  chunkctl compare --pattern random --ops 200000 --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare()
		},
	}
	return cmd
}

// CompareResult is the timing of one strategy.
type CompareResult struct {
	Strategy string        `json:"strategy"`
	Ops      int           `json:"ops"`
	Elapsed  time.Duration `json:"elapsed_ns"`
	NsPerOp  float64       `json:"ns_per_op"`
	Pools    int           `json:"pools"`
}

func runCompare() error {
	if compareChunks < 2 || compareSize < 1 || compareOps < 1 {
		return errors.New("--chunks must be >= 2, --size and --ops must be >= 1")
	}
	run, ok := workloads[comparePattern]
	if !ok {
		return fmt.Errorf("unknown pattern %q", comparePattern)
	}
	setup, err := newChainSetup()
	if err != nil {
		return err
	}

	var results []CompareResult
	for _, s := range []pool.Strategy{pool.StrategySequential, pool.StrategyHeuristic} {
		opts := setup.opts
		opts.Strategy = s
		c, err := pool.New(compareChunks, compareSize, &opts)
		if err != nil {
			return fmt.Errorf("failed to create chain: %w", err)
		}

		printVerbose("Running %s with %s search\n", comparePattern, s)
		rng := rand.New(rand.NewSource(compareSeed))
		start := time.Now()
		werr := run(c, compareOps, rng)
		elapsed := time.Since(start)

		res := CompareResult{
			Strategy: s.String(),
			Ops:      compareOps,
			Elapsed:  elapsed,
			NsPerOp:  float64(elapsed.Nanoseconds()) / float64(compareOps),
			Pools:    c.Len(),
		}
		if err := errors.Join(werr, c.Verify(), pool.Destroy(&c)); err != nil {
			return fmt.Errorf("%s: %w", s, err)
		}
		results = append(results, res)
	}

	if jsonOut {
		return printJSON(results)
	}
	printInfo("Pattern: %s, %d chunks x %d bytes, %d ops\n", comparePattern, compareChunks, compareSize, compareOps)
	for _, r := range results {
		printInfo("  %-10s %10.1f ns/op  (%v, %d pools)\n", r.Strategy, r.NsPerOp, r.Elapsed.Round(time.Microsecond), r.Pools)
	}
	return nil
}

// workload drives ops operations against c.
type workload func(c *pool.Chain, ops int, rng *rand.Rand) error

var workloads = map[string]workload{
	"lifo": func(c *pool.Chain, ops int, _ *rand.Rand) error {
		return churn(c, ops, func(n int) int { return n - 1 })
	},
	"fifo": func(c *pool.Chain, ops int, _ *rand.Rand) error {
		i := -1
		return churn(c, ops, func(n int) int {
			i = (i + 1) % n
			return i
		})
	},
	"random": func(c *pool.Chain, ops int, rng *rand.Rand) error {
		return churn(c, ops, rng.Intn)
	},
	"fill": func(c *pool.Chain, ops int, _ *rand.Rand) error {
		n := c.ChunkCount()
		for done := 0; done < ops; {
			for i := 0; i < n && done < ops; i++ {
				if _, err := c.Allocate(); err != nil {
					return err
				}
				done++
			}
			c.Clear()
		}
		return nil
	},
}

// churn half-fills the head pool, then frees the chunk chosen by pick and
// allocates a replacement, ops times.
func churn(c *pool.Chain, ops int, pick func(n int) int) error {
	live := make([][]byte, 0, c.ChunkCount()/2)
	for range c.ChunkCount() / 2 {
		chunk, err := c.Allocate()
		if err != nil {
			return err
		}
		live = append(live, chunk)
	}
	for range ops {
		j := pick(len(live))
		if err := c.Free(live[j]); err != nil {
			return err
		}
		chunk, err := c.Allocate()
		if err != nil {
			return err
		}
		live[j] = chunk
	}
	return nil
}
