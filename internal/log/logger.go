// Package log wraps slog with the CLI's verbosity flags. Warnings and
// errors always print; -v, -vv, and -vvv progressively open up info,
// debug, and trace output.
package log

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
)

const (
	LevelQuiet = iota // errors and warnings only
	LevelInfo         // -v: fetch progress, cache hits, item counts
	LevelDebug        // -vv: API calls, cache reads/writes, timing
	LevelTrace        // -vvv: request details, write failures
)

// slog has no trace level; anything below debug works.
const slogLevelTrace = slog.Level(-8)

var (
	verbosity  int
	logger     *slog.Logger
	output     io.Writer
	inProgress bool
)

func init() {
	output = os.Stderr
	verbosity = LevelQuiet
	logger = slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	}))
}

// Initialize sets the global verbosity and output writer.
func Initialize(level int, w io.Writer) {
	verbosity = level
	output = w

	var slogLevel slog.Level
	switch {
	case level >= LevelTrace:
		slogLevel = slogLevelTrace
	case level >= LevelDebug:
		slogLevel = slog.LevelDebug
	case level >= LevelInfo:
		slogLevel = slog.LevelInfo
	default:
		slogLevel = slog.LevelWarn
	}

	logger = slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{
		Level: slogLevel,
	}))
}

// Info logs at info level (-v)
func Info(msg string, args ...any) {
	if verbosity >= LevelInfo {
		endProgress()
		logger.Info(msg, args...)
	}
}

// Debug logs at debug level (-vv)
func Debug(msg string, args ...any) {
	if verbosity >= LevelDebug {
		endProgress()
		logger.Debug(msg, args...)
	}
}

// Trace logs at trace level (-vvv)
func Trace(msg string, args ...any) {
	if verbosity >= LevelTrace {
		endProgress()
		logger.Log(context.Background(), slogLevelTrace, msg, args...)
	}
}

// Warn logs at warn level, regardless of verbosity
func Warn(msg string, args ...any) {
	endProgress()
	logger.Warn(msg, args...)
}

// Error logs at error level, regardless of verbosity
func Error(msg string, args ...any) {
	endProgress()
	logger.Error(msg, args...)
}

// Progress writes an in-place progress line (carriage return, no newline).
// Shown at info level or higher.
func Progress(format string, args ...any) {
	if verbosity >= LevelInfo {
		inProgress = true
		_, _ = fmt.Fprintf(output, "\r"+format, args...)
	}
}

// ProgressDone finishes an in-place progress line.
func ProgressDone() {
	if verbosity >= LevelInfo && inProgress {
		_, _ = fmt.Fprintln(output, " done")
		inProgress = false
	}
}

// endProgress terminates a pending progress line so log output never
// overwrites it.
func endProgress() {
	if inProgress {
		_, _ = fmt.Fprintln(output)
		inProgress = false
	}
}

// IsInfo reports whether info-level logging is enabled
func IsInfo() bool { return verbosity >= LevelInfo }

// IsDebug reports whether debug-level logging is enabled
func IsDebug() bool { return verbosity >= LevelDebug }

// IsTrace reports whether trace-level logging is enabled
func IsTrace() bool { return verbosity >= LevelTrace }
