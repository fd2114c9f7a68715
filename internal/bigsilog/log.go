// Package bigsilog provides the structured logger used across the core:
// a thin wrapper over log/slog so call sites read like
// bigsilog.L().Info("...", "key", val) without every package constructing
// its own handler.
package bigsilog

import (
	"log/slog"
	"os"
	"sync"
)

var (
	mu      sync.Mutex
	current *slog.Logger
)

func init() {
	current = slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// L returns the process-wide logger.
func L() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	return current
}

// SetDefault replaces the process-wide logger, e.g. so the CLI can switch
// to JSON output or a different level.
func SetDefault(l *slog.Logger) {
	mu.Lock()
	defer mu.Unlock()
	current = l
}
