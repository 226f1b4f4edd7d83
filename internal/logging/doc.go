// Package logging provides structured logging utilities for the
// cursor-todo application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard library's
// slog package.
//
// # Key Features
//
//   - Structured logging with slog (JSON or text handlers)
//   - Account anonymization so logs carry no raw email addresses
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "store.list")
//	logger.Info("fetched tasks", logging.Status(logging.StatusSuccess))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("signed in", logging.AccountHash(user.Email))
package logging
