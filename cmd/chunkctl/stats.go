package main

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkpool/pool"
)

var (
	statsAlloc     int
	statsFreeEvery int
	statsClear     bool
)

func init() {
	cmd := newStatsCmd()
	cmd.Flags().IntVar(&statsAlloc, "alloc", 0, "Number of chunks to allocate (default: one pool's worth)")
	cmd.Flags().IntVar(&statsFreeEvery, "free-every", 0, "Free every Nth allocated chunk afterwards (0 = none)")
	cmd.Flags().BoolVar(&statsClear, "clear", false, "Clear the chain before reporting")
	rootCmd.AddCommand(cmd)
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <chunks-per-pool> <chunk-size>",
		Short: "Show occupancy statistics for a synthetic workload",
		Long: `The stats command creates a chain with the given geometry, allocates
--alloc chunks, optionally frees every Nth one or clears the chain, and
prints the resulting statistics.

Example:
  chunkctl stats 128 64 --alloc 300
  chunkctl stats 128 64 --alloc 300 --free-every 3 -v
  chunkctl stats 1024 16 --alloc 5000 --backing mmap --json`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	count, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid chunk count %q: %w", args[0], err)
	}
	size, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid chunk size %q: %w", args[1], err)
	}
	setup, err := newChainSetup()
	if err != nil {
		return err
	}

	c, err := pool.New(count, size, &setup.opts)
	if err != nil {
		return fmt.Errorf("failed to create chain: %w", err)
	}

	n := statsAlloc
	if n == 0 {
		n = count
	}
	var allocErr error
	chunks := make([][]byte, 0, n)
	for i := range n {
		chunk, err := c.Allocate()
		if err != nil {
			allocErr = fmt.Errorf("allocation %d: %w", i, err)
			printVerbose("Stopping after %d allocations: %v\n", i, err)
			break
		}
		chunks = append(chunks, chunk)
	}

	if statsFreeEvery > 0 {
		for i := statsFreeEvery - 1; i < len(chunks); i += statsFreeEvery {
			if err := c.Free(chunks[i]); err != nil {
				return errors.Join(err, pool.Destroy(&c))
			}
		}
	}
	if statsClear {
		c.Clear()
	}
	if err := c.Verify(); err != nil {
		return errors.Join(err, pool.Destroy(&c))
	}

	st := c.Stats()
	if err := pool.Destroy(&c); err != nil {
		return fmt.Errorf("failed to destroy chain: %w", err)
	}

	if jsonOut {
		if err := printJSON(st); err != nil {
			return err
		}
	} else {
		printStats(st)
	}
	return allocErr
}
