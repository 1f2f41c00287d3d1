package pool

import (
	"log/slog"
	"os"

	"github.com/joshuapare/chunkpool/backing"
)

// Strategy selects how a pool's bitmap is searched for a free chunk.
type Strategy int

const (
	// StrategySequential scans bitmap words from the first one, skipping words
	// with no free chunk.
	StrategySequential Strategy = iota

	// StrategyHeuristic starts scanning at word (chunkCount-freeCount)/64, where
	// the next free chunk usually sits when chunks are taken and returned in
	// order, and wraps around to word 0.
	StrategyHeuristic
)

// String returns the flag spelling of the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategySequential:
		return "sequential"
	case StrategyHeuristic:
		return "heuristic"
	default:
		return "unknown"
	}
}

// ParseStrategy maps "sequential" or "heuristic" to a Strategy.
func ParseStrategy(s string) (Strategy, bool) {
	switch s {
	case "sequential", "seq":
		return StrategySequential, true
	case "heuristic", "heur":
		return StrategyHeuristic, true
	default:
		return StrategySequential, false
	}
}

// logEnv enables debug logging to stderr when no Logger is configured.
const logEnv = "CHUNKPOOL_LOG"

// Options configures a chain.
//
// Use DefaultOptions() for the defaults; a nil *Options passed to New means
// the same thing.
type Options struct {
	// Strategy selects the free-chunk search.
	// Default: StrategySequential
	Strategy Strategy

	// Backing supplies bitmap and arena memory for every pool in the chain.
	// Default: backing.Heap{}
	Backing backing.Backing

	// Logger receives debug events (pool created, chain grown, chain destroyed).
	// Default: discard, or a stderr text logger at debug level when the
	// CHUNKPOOL_LOG environment variable is set.
	Logger *slog.Logger
}

// DefaultOptions returns the default chain configuration.
func DefaultOptions() Options {
	return Options{
		Strategy: StrategySequential,
		Backing:  backing.Heap{},
	}
}

// resolve fills unset fields with defaults.
func (o Options) resolve() Options {
	if o.Backing == nil {
		o.Backing = backing.Heap{}
	}
	if o.Logger == nil {
		o.Logger = defaultLogger()
	}
	return o
}

func defaultLogger() *slog.Logger {
	if os.Getenv(logEnv) != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.DiscardHandler)
}
