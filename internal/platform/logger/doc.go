// Package logger provides structured logging functionality for the application.
//
// It builds on Go's standard library log/slog package: JSON output for
// production, a colorized human-readable handler (tint) for local runs, and
// helpers for carrying a request-scoped logger through a context.Context.
package logger
