// Package logging defines the structured-logging interface shared by the
// storefront client packages. The default implementation wraps log/slog.
package logging

import "context"

// Logger is a context-aware, structured logger.
//
// The variadic args are interpreted as key–value pairs, e.g.:
//
//	log.Debug(ctx, "request sent", "method", "GET", "path", "/books")
type Logger interface {
	// Debug logs per-request diagnostics.
	Debug(ctx context.Context, msg string, args ...any)
	// Info logs an informational message.
	Info(ctx context.Context, msg string, args ...any)
	// Warn logs a condition the caller recovered from (e.g. a refresh that failed).
	Warn(ctx context.Context, msg string, args ...any)
	// Error logs a failure.
	Error(ctx context.Context, msg string, args ...any)
	// With returns a child logger that always includes the given key–value pairs.
	With(args ...any) Logger
}
