// Package logger provides structured logging functionality for the application.
//
// It configures Go's log/slog with a text or JSON handler on stderr at a
// configurable level, carries loggers through contexts, and offers helpers
// for capturing log output in tests.
package logger
