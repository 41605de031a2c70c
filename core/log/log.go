// Package log defines the structured logging interface shared by hatch packages.
//
// Overview:
//   - Responsibility: Stable logging contract between the engine and its hosts
//   - Key Types: Logger interface with structured key-value logging
//   - Concurrency Model: Implementations must be safe for concurrent use
//   - Error Semantics: Error method accepts error as first parameter
//   - Performance Notes: Key-value pairs are passed through without boxing helpers
//
// Usage:
//
//	logger.Debug("action applied", "generator", g.Name, "index", i)
package log

// Logger defines a structured logging interface compatible with slog concepts.
type Logger interface {
	// With returns a Logger with the given key-value pairs attached to every record.
	With(kv ...any) Logger

	// Debug logs a debug message with optional key-value pairs.
	Debug(msg string, kv ...any)

	// Info logs an informational message with optional key-value pairs.
	Info(msg string, kv ...any)

	// Warn logs a warning message with optional key-value pairs.
	Warn(msg string, kv ...any)

	// Error logs an error message with the error and optional key-value pairs.
	Error(err error, msg string, kv ...any)
}

// Nop returns a Logger that discards everything.
func Nop() Logger {
	return nop{}
}

type nop struct{}

func (n nop) With(...any) Logger          { return n }
func (nop) Debug(string, ...any)          {}
func (nop) Info(string, ...any)           {}
func (nop) Warn(string, ...any)           {}
func (nop) Error(error, string, ...any)   {}
