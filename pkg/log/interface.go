// Package log provides a structured logging interface for database and
// analytics operations.
//
// This package defines a minimal, slog-compatible logging interface that allows
// for flexible implementation switching while providing SQL-specific structured
// logging capabilities. The interface is designed to integrate seamlessly with
// Go's standard log/slog package and with zerolog.
//
// Key features:
//   - slog-compatible interface for future-proofing
//   - SQL-specific structured attributes (dialect, query text, row counts)
//   - Context-aware logging with field chaining
//   - Test-friendly with configurable output destinations
//
// Example usage:
//
//	logger := log.GetLogger().With(
//	    log.DialectKey, "netezza",
//	    log.SchemaKey, "ADMIN",
//	)
//	logger.Info("query executed",
//	    log.OperationKey, log.OperationCollect,
//	    log.RowsKey, 150,
//	)
package log

import (
	"context"
)

// Logger defines a structured logging interface compatible with Go's log/slog.
//
// This interface provides the core logging methods with structured field
// support. It is implementation-agnostic, enabling easy switching between
// different logging backends while maintaining a consistent API.
//
// The interface supports method chaining through the With method, allowing
// for creation of contextual loggers with pre-populated fields.
type Logger interface {
	// Debug logs a debug-level message with optional structured fields.
	// Debug level is where full SQL statements are emitted.
	//
	// Example:
	//
	//	logger.Debug("executing statement",
	//	    log.QueryKey, sql,
	//	)
	Debug(msg string, fields ...any)

	// Info logs an info-level message with optional structured fields.
	//
	// Example:
	//
	//	logger.Info("model training completed",
	//	    log.ModelNameKey, "KMEANS_1",
	//	    log.DurationSecondsKey, 12.4,
	//	)
	Info(msg string, fields ...any)

	// Warn logs a warning-level message with optional structured fields.
	// Warning logs indicate potentially problematic situations that
	// don't prevent the operation from continuing, such as implicit
	// column type conversion.
	Warn(msg string, fields ...any)

	// Error logs an error-level message with optional structured fields.
	// If an error value is provided under the "error" key, stack trace
	// information is automatically included by the handler.
	//
	// Example:
	//
	//	logger.Error("query failed",
	//	    log.ErrAttrKey, err,
	//	    log.QueryKey, sql,
	//	)
	Error(msg string, fields ...any)

	// With returns a new Logger with the given fields pre-populated.
	// This enables contextual loggers that automatically include common
	// fields (connection, schema) in all subsequent log messages.
	With(fields ...any) Logger

	// Enabled reports whether the logger emits log records at the given level.
	// Use it to avoid building expensive attributes (e.g. rendering a nested
	// SQL statement) for records that won't be emitted.
	Enabled(ctx context.Context, level Level) bool
}

// Level represents a logging level, compatible with slog.Level.
type Level int

// Standard logging levels, values are compatible with slog.Level.
const (
	LevelDebug Level = -4 // Detailed diagnostic information, full SQL text
	LevelInfo  Level = 0  // General operational information
	LevelWarn  Level = 4  // Warning conditions
	LevelError Level = 8  // Error conditions
)

// String returns the string representation of the log level.
func (l Level) String() string {
	switch l {
	case LevelDebug:
		return "DEBUG"
	case LevelInfo:
		return "INFO"
	case LevelWarn:
		return "WARN"
	case LevelError:
		return "ERROR"
	default:
		return "UNKNOWN"
	}
}
