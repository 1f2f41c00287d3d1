package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/joshuapare/chunkpool/backing"
	"github.com/joshuapare/chunkpool/pool"
)

var (
	// Global flags
	verbose     bool
	quiet       bool
	jsonOut     bool
	strategyArg string
	backingArg  string
	limitBytes  int
)

var rootCmd = &cobra.Command{
	Use:   "chunkctl",
	Short: "Exercise and inspect fixed-size chunk pools",
	Long: `chunkctl drives chunkpool chains from the command line. It runs the
linked-list demonstration, reports occupancy statistics for synthetic
workloads, and compares the sequential and heuristic free-chunk searches.`,
	Version:       "0.1.0",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output and debug logging")
	rootCmd.PersistentFlags().
		BoolVarP(&quiet, "quiet", "q", false, "Suppress all output except errors")
	rootCmd.PersistentFlags().BoolVar(&jsonOut, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().
		StringVar(&strategyArg, "strategy", "sequential", "Free-chunk search: sequential or heuristic")
	rootCmd.PersistentFlags().
		StringVar(&backingArg, "backing", "heap", "Arena memory: heap or mmap")
	rootCmd.PersistentFlags().
		IntVar(&limitBytes, "limit", 0, "Cap on arena and bitmap bytes (0 = unlimited)")
}

func execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// chainSetup is the backing and options derived from global flags.
type chainSetup struct {
	opts    pool.Options
	tracker *backing.Tracking
}

// newChainSetup builds pool options from the global flags. Every chain gets
// a tracking backing so leaks can be reported after Destroy.
func newChainSetup() (chainSetup, error) {
	strategy, ok := pool.ParseStrategy(strategyArg)
	if !ok {
		return chainSetup{}, fmt.Errorf("unknown strategy %q (want sequential or heuristic)", strategyArg)
	}

	var mem backing.Backing
	switch backingArg {
	case "heap":
		mem = backing.Heap{}
	case "mmap":
		if !backing.MmapAvailable {
			printVerbose("mmap not available on this platform, using heap\n")
		}
		mem = backing.Mmap{}
	default:
		return chainSetup{}, fmt.Errorf("unknown backing %q (want heap or mmap)", backingArg)
	}
	if limitBytes > 0 {
		mem = backing.NewLimited(mem, limitBytes)
	}
	tr := backing.NewTracking(mem)

	return chainSetup{
		opts: pool.Options{
			Strategy: strategy,
			Backing:  tr,
			Logger:   newLogger(),
		},
		tracker: tr,
	}, nil
}

// newLogger returns a debug logger on stderr when verbose, else a discard logger.
func newLogger() *slog.Logger {
	if verbose && !quiet {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}

// Helper functions for output

// printer formats numbers with thousands separators.
var printer = message.NewPrinter(language.English)

// printInfo prints an info message if not in quiet mode
func printInfo(format string, args ...any) {
	if !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printVerbose prints a verbose message if verbose mode is enabled
func printVerbose(format string, args ...any) {
	if verbose && !quiet {
		printer.Fprintf(os.Stdout, format, args...)
	}
}

// printJSON outputs data as JSON
func printJSON(v any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// printStats renders chain statistics as a table.
func printStats(st pool.Stats) {
	printInfo("Strategy:        %s\n", st.Strategy)
	printInfo("Pools:           %d\n", st.Pools)
	printInfo("Chunk size:      %d bytes\n", st.ChunkSize)
	printInfo("Chunks per pool: %d\n", st.ChunksPerPool)
	printInfo("Chunks:          %d used / %d total (%.1f%%)\n", st.UsedChunks, st.TotalChunks, st.Utilization*100)
	printInfo("Arena bytes:     %d\n", st.ArenaBytes)
	printInfo("Bitmap bytes:    %d\n", st.BitmapBytes)
	printInfo("Calls:           alloc=%d free=%d grow=%d clear=%d\n",
		st.AllocCalls, st.FreeCalls, st.GrowCalls, st.ClearCalls)
	if st.GrowFailures > 0 {
		printInfo("Grow failures:   %d\n", st.GrowFailures)
	}
	for i, ps := range st.PerPool {
		printVerbose("  pool %d: %d/%d free\n", i, ps.FreeChunks, ps.ChunkCount)
	}
}
