// Package logging provides structured logging with policy-driven
// redaction.
//
// The package wraps Go's log/slog. New builds a logger from a small
// config (level, format, destination) and, when given a Redactor,
// decorates the output handler with RedactHandler so every message and
// string attribute value passes through the loaded redaction policy
// before it is written.
//
//	logger, err := logging.New(logging.Config{
//	    Level:    "info",
//	    Format:   "json",
//	    Redactor: redactor,
//	})
//
//	logger.Info("user logged in", "detail", "SSN: 123-45-6789")
//	// the emitted record carries the redacted detail
//
// Only string values are redacted; numbers, booleans, times and other
// structured values pass through untouched.
package logging
