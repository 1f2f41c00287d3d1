package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/joshuapare/chunkpool/cmd/chviz/logger"
	"github.com/joshuapare/chunkpool/pool"
)

var version = "dev"

const (
	defaultChunks = 64
	defaultSize   = 16
)

// config is the parsed command line.
type config struct {
	debug    bool
	strategy pool.Strategy
	chunks   int
	size     int
}

func main() {
	args := os.Args[1:]
	for _, a := range args {
		switch a {
		case "--help", "-h":
			printHelp()
			os.Exit(0)
		case "--version", "-v":
			fmt.Printf("chviz %s\n", version)
			os.Exit(0)
		}
	}

	cfg, err := parseArgs(args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(1)
	}

	// Initialize logger (must be before any logging calls)
	if err := logger.Init(logger.Options{
		Enabled: cfg.debug,
		Level:   slog.LevelDebug,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: failed to init logging: %v\n", err)
	}
	logger.Info("starting chviz", "chunks", cfg.chunks, "size", cfg.size, "strategy", cfg.strategy)

	chain, err := pool.New(cfg.chunks, cfg.size, &pool.Options{
		Strategy: cfg.strategy,
		Logger:   logger.L,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	p := tea.NewProgram(NewModel(chain, uint64(time.Now().UnixNano())), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		logger.Error("TUI error", "error", err)
		fmt.Fprintf(os.Stderr, "Error running TUI: %v\n", err)
		_ = pool.Destroy(&chain)
		_ = logger.Close()
		os.Exit(1)
	}

	if err := pool.Destroy(&chain); err != nil {
		logger.Error("destroy failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		_ = logger.Close()
		os.Exit(1)
	}
	_ = logger.Close()
}

// parseArgs reads [--debug] [--heuristic] [chunks-per-pool [chunk-size]].
func parseArgs(args []string) (config, error) {
	cfg := config{chunks: defaultChunks, size: defaultSize}

	var positional []string
	for _, a := range args {
		switch a {
		case "--debug", "-d":
			cfg.debug = true
		case "--heuristic":
			cfg.strategy = pool.StrategyHeuristic
		default:
			positional = append(positional, a)
		}
	}
	if len(positional) > 2 {
		return config{}, errors.New("too many arguments")
	}

	dst := []*int{&cfg.chunks, &cfg.size}
	for i, a := range positional {
		n, err := strconv.Atoi(a)
		if err != nil || n < 1 {
			return config{}, fmt.Errorf("invalid count %q", a)
		}
		*dst[i] = n
	}
	return cfg, nil
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: chviz [options] [chunks-per-pool [chunk-size]]\n")
	fmt.Fprintf(os.Stderr, "Try 'chviz --help' for more information.\n")
}

func printHelp() {
	fmt.Println("chviz - Interactive view of chunk pool occupancy")
	fmt.Println()
	fmt.Println("USAGE:")
	fmt.Println("  chviz [options] [chunks-per-pool [chunk-size]]")
	fmt.Println()
	fmt.Printf("  Defaults: %d chunks of %d bytes per pool.\n", defaultChunks, defaultSize)
	fmt.Println()
	fmt.Println("KEYS:")
	for _, k := range DefaultKeyMap().shortHelp() {
		h := k.Help()
		fmt.Printf("  %-6s %s\n", h.Key, h.Desc)
	}
	fmt.Println()
	fmt.Println("OPTIONS:")
	fmt.Println("  -d, --debug      Write debug logs to ~/.chviz/logs")
	fmt.Println("      --heuristic  Use the heuristic free-chunk search")
	fmt.Println("  -h, --help       Show this help")
	fmt.Println("  -v, --version    Show version")
}
