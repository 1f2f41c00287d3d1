package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/joshuapare/chunkpool/pool"
)

var (
	demoNodes int
)

func init() {
	cmd := newDemoCmd()
	cmd.Flags().IntVar(&demoNodes, "nodes", 100, "Chunks per pool; the demo allocates one more than this")
	rootCmd.AddCommand(cmd)
}

func newDemoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Build a linked list in a chain one node past capacity",
		Long: `The demo command creates a chain sized for --nodes list nodes, then
allocates --nodes+1 nodes and links them into a doubly linked list. The
extra node forces the chain to grow to a second pool. The command checks
the chain's bookkeeping, destroys it and reports any leaked regions.

Example:
  chunkctl demo
  chunkctl demo --nodes 1000 --backing mmap
  chunkctl demo --strategy heuristic --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo()
		},
	}
	return cmd
}

// pointNode is one list element stored in a chunk.
type pointNode struct {
	x, y       int
	next, prev *pointNode
}

// DemoReport summarises a demo run.
type DemoReport struct {
	Nodes        int        `json:"nodes"`
	Sum          int        `json:"sum_y"`
	Before       pool.Stats `json:"before_destroy"`
	Leaked       int        `json:"leaked_regions"`
	ReleasedOnce bool       `json:"released_once"`
}

func runDemo() error {
	if demoNodes < 1 {
		return fmt.Errorf("--nodes must be >= 1, got %d", demoNodes)
	}
	setup, err := newChainSetup()
	if err != nil {
		return err
	}

	nodes, err := pool.NewFor[pointNode](demoNodes, &setup.opts)
	if err != nil {
		return fmt.Errorf("failed to create chain: %w", err)
	}

	head, err := pool.Alloc[pointNode](nodes)
	if err != nil {
		return errors.Join(fmt.Errorf("failed to allocate head: %w", err), pool.Destroy(&nodes))
	}
	head.x, head.y = 1, 1

	cur := head
	for i := range demoNodes {
		next, err := pool.Alloc[pointNode](nodes)
		if err != nil {
			return errors.Join(fmt.Errorf("failed to allocate node %d: %w", i, err), pool.Destroy(&nodes))
		}
		next.x = cur.x
		if cur.prev != nil {
			next.x += cur.prev.x
		}
		next.y = i
		cur.next = next
		next.prev = cur
		cur = next
	}

	report := DemoReport{Before: nodes.Stats()}
	for p := head; p != nil; p = p.next {
		report.Nodes++
		report.Sum += p.y
	}

	if err := checkDemo(nodes); err != nil {
		return errors.Join(err, pool.Destroy(&nodes))
	}
	if err := pool.Destroy(&nodes); err != nil {
		return fmt.Errorf("failed to destroy chain: %w", err)
	}
	if nodes != nil {
		return errors.New("chain reference not cleared by destroy")
	}

	report.Leaked = setup.tracker.Outstanding()
	report.ReleasedOnce = setup.tracker.Released() == setup.tracker.Acquired()

	if jsonOut {
		return printJSON(report)
	}
	printInfo("Linked %d nodes across %d pools\n", report.Nodes, report.Before.Pools)
	printStats(report.Before)
	printInfo("Leaked regions:  %d\n", report.Leaked)
	if report.Leaked != 0 {
		return fmt.Errorf("%d regions leaked", report.Leaked)
	}
	return nil
}

// checkDemo verifies the chain grew by exactly one pool for the extra node.
func checkDemo(nodes *pool.Chain) error {
	if err := nodes.Verify(); err != nil {
		return err
	}
	st := nodes.Stats()
	switch {
	case st.Pools != 2:
		return fmt.Errorf("expected 2 pools, got %d", st.Pools)
	case st.PerPool[0].FreeChunks != 0:
		return fmt.Errorf("head pool has %d free chunks, want 0", st.PerPool[0].FreeChunks)
	case st.PerPool[1].FreeChunks != demoNodes-1:
		return fmt.Errorf("second pool has %d free chunks, want %d", st.PerPool[1].FreeChunks, demoNodes-1)
	case st.PerPool[1].ChunkCount != st.PerPool[0].ChunkCount:
		return fmt.Errorf("second pool holds %d chunks, head holds %d", st.PerPool[1].ChunkCount, st.PerPool[0].ChunkCount)
	}
	return nil
}
