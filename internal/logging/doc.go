// Package logging provides structured logging utilities for the
// frontdesk application.
//
// This package centralizes logging patterns to ensure consistent,
// structured logging throughout the codebase using the standard
// library's slog package.
//
// # Key Features
//
//   - Structured logging with slog
//   - PII sanitization (email anonymization)
//   - Consistent attribute naming across the codebase
//
// # Usage Patterns
//
// Create a logger with standard attributes:
//
//	logger := logging.WithOperation(slog.Default(), "calendar.list_busy")
//	logger.Info("fetched busy intervals",
//	    logging.Status("success"))
//
// Sanitize sensitive data before logging:
//
//	logger.Info("booking created",
//	    logging.UserHash(attendeeEmail))
//
// # Security Considerations
//
// Attendee and recipient emails are hashed to prevent PII leakage while
// still allowing correlation of log entries.
package logging
