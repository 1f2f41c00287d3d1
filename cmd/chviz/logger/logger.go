// Package logger is chviz's file logger. A TUI owns the terminal, so log
// output goes to a daily file instead of stderr.
package logger

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// L receives every chviz and chain log record. It discards until Init
// enables file logging.
var L = slog.New(slog.DiscardHandler)

// file is the log file L currently writes to, nil when discarding.
var file *os.File

const (
	logPrefix     = "chviz-"
	logSuffix     = ".log"
	retentionDays = 14
)

// Options configures the logger initialization.
type Options struct {
	Enabled bool       // If false, all logging is discarded
	LogDir  string     // Directory for log files. Default: ~/.chviz/logs
	Level   slog.Level // Minimum log level. Zero value is LevelInfo
}

// Init points L at today's log file, or at nothing when opts.Enabled is
// false. Any file opened by an earlier Init is closed.
func Init(opts Options) error {
	if err := Close(); err != nil {
		return err
	}
	if !opts.Enabled {
		return nil
	}

	dir := opts.LogDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return err
		}
		dir = filepath.Join(home, ".chviz", "logs")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	now := time.Now()
	cleanOldLogs(dir, now)

	f, err := os.OpenFile(logPath(dir, now), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	file = f
	L = slog.New(slog.NewJSONHandler(f, &slog.HandlerOptions{Level: opts.Level}))
	return nil
}

// Close stops file logging and closes the current log file, if any.
func Close() error {
	L = slog.New(slog.DiscardHandler)
	if file == nil {
		return nil
	}
	err := file.Close()
	file = nil
	return err
}

// logPath names the log file for day.
func logPath(dir string, day time.Time) string {
	return filepath.Join(dir, logPrefix+day.Format(time.DateOnly)+logSuffix)
}

// cleanOldLogs removes chviz log files dated more than retentionDays before
// now. Files it cannot parse or remove are left alone.
func cleanOldLogs(dir string, now time.Time) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	cutoff := now.AddDate(0, 0, -retentionDays)
	for _, e := range entries {
		date, ok := strings.CutPrefix(e.Name(), logPrefix)
		if !ok {
			continue
		}
		date, ok = strings.CutSuffix(date, logSuffix)
		if !ok {
			continue
		}
		day, err := time.Parse(time.DateOnly, date)
		if err != nil || !day.Before(cutoff) {
			continue
		}
		_ = os.Remove(filepath.Join(dir, e.Name()))
	}
}

// Debug logs a debug message with optional key-value pairs.
func Debug(msg string, args ...any) { L.Debug(msg, args...) }

// Info logs an info message with optional key-value pairs.
func Info(msg string, args ...any) { L.Info(msg, args...) }

// Error logs an error message with optional key-value pairs.
func Error(msg string, args ...any) { L.Error(msg, args...) }
