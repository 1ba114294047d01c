// Package logging configures structured logging using Go's slog package.
package logging

import (
	"log/slog"
	"os"
)

// New builds a text-format logger on stderr and installs it as the
// process default. The tool is quiet by default so its stdout report
// stays clean; verbose lowers the level to Debug for per-entry tracing.
func New(verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}
