// Package onyolog is the compiler's incidental operational logger: resource
// loads, subprocess spawns, history-log failures — anything that is not a
// user-facing compiler diagnostic (those go through internal/diagnostics and
// internal/renderer instead). Kept as a thin wrapper over log/slog since no
// example in the retrieved pack wires a third-party structured-logging
// library for this kind of incidental text.
package onyolog

import (
	"log/slog"
	"os"
)

var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

// SetVerbose raises or lowers the logger's minimum level; the CLI's
// --verbose flag calls this once during startup.
func SetVerbose(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// Debug logs a low-traffic operational event, e.g. a preprocessor
// substitution or a grammar-table load.
func Debug(msg string, args ...any) {
	logger.Debug(msg, args...)
}

// Info logs a normal operational event, e.g. a subprocess spawn.
func Info(msg string, args ...any) {
	logger.Info(msg, args...)
}

// Warn logs a swallowed, non-fatal failure, e.g. a history-log write that
// could not be completed.
func Warn(msg string, args ...any) {
	logger.Warn(msg, args...)
}

// Error logs an operational (not compiler-diagnostic) failure.
func Error(msg string, args ...any) {
	logger.Error(msg, args...)
}
