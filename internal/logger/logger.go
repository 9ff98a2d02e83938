// Package logger provides structured logging for the Clauseline CLI.
// Events are emitted through zerolog; the --verbose flag switches on
// debug output so users can follow the analysis pipeline.
package logger

import (
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	mu      sync.RWMutex
	verbose bool
	zlog    = newLogger(os.Stderr, true)
)

func newLogger(w io.Writer, pretty bool) zerolog.Logger {
	if pretty {
		w = zerolog.ConsoleWriter{Out: w, TimeFormat: time.RFC3339}
	}
	return zerolog.New(w).With().Timestamp().Str("service", "clauseline").Logger()
}

// SetVerbose enables or disables debug logging.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()
	verbose = v
	if v {
		zlog = zlog.Level(zerolog.DebugLevel)
	} else {
		zlog = zlog.Level(zerolog.InfoLevel)
	}
}

// IsVerbose returns true if verbose mode is enabled.
func IsVerbose() bool {
	mu.RLock()
	defer mu.RUnlock()
	return verbose
}

// SetOutput sets the output writer, without console formatting.
// Passing nil restores the default stderr console writer.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	level := zlog.GetLevel()
	if w == nil {
		zlog = newLogger(os.Stderr, true).Level(level)
		return
	}
	zlog = newLogger(w, false).Level(level)
}

// Debug logs a debug message. Suppressed unless verbose mode is on.
func Debug(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	zlog.Debug().Msgf(format, args...)
}

// Info logs an informational message.
func Info(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	zlog.Info().Msgf(format, args...)
}

// Warn logs a warning message.
func Warn(format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	zlog.Warn().Msgf(format, args...)
}

// Error logs an error with its message.
func Error(err error, format string, args ...any) {
	mu.RLock()
	defer mu.RUnlock()
	zlog.Error().Err(err).Msgf(format, args...)
}

// With returns a zerolog context for callers that need structured
// fields beyond the printf helpers.
func With() zerolog.Context {
	mu.RLock()
	defer mu.RUnlock()
	return zlog.With()
}
