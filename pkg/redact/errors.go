package redact

import (
	"errors"
	"fmt"
)

// ErrMissingVersion indicates the policy document has no version field.
var ErrMissingVersion = errors.New("redaction policy: no version specified")

// MalformedPolicyError indicates the policy source could not be parsed
// into the expected document shape.
type MalformedPolicyError struct {
	// Cause is the underlying parse error.
	Cause error
}

// Error returns the error message.
func (e *MalformedPolicyError) Error() string {
	return fmt.Sprintf("redaction policy: malformed document: %v", e.Cause)
}

// Unwrap returns the underlying cause.
func (e *MalformedPolicyError) Unwrap() error {
	return e.Cause
}

// UnsupportedVersionError indicates the policy declares a version other
// than the single supported one.
type UnsupportedVersionError struct {
	// Version is the version found in the document.
	Version int
}

// Error returns the error message.
func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("redaction policy: unsupported version %d (supported: %d)", e.Version, SupportedVersion)
}

// EmptySearchError indicates a rule with a blank search pattern.
type EmptySearchError struct {
	// Rule is the zero-based index of the offending rule in file order.
	Rule int
}

// Error returns the error message.
func (e *EmptySearchError) Error() string {
	return fmt.Sprintf("redaction policy: rule %d: search pattern cannot be empty", e.Rule)
}

// EmptyReplacementError indicates a rule with a blank replacement template.
type EmptyReplacementError struct {
	// Rule is the zero-based index of the offending rule in file order.
	Rule int
}

// Error returns the error message.
func (e *EmptyReplacementError) Error() string {
	return fmt.Sprintf("redaction policy: rule %d: replacement text cannot be empty", e.Rule)
}

// InvalidPatternError indicates a rule whose search pattern is not a
// valid regular expression.
type InvalidPatternError struct {
	// Rule is the zero-based index of the offending rule in file order.
	Rule int

	// Pattern is the pattern that failed to compile.
	Pattern string

	// Cause is the regexp compilation error.
	Cause error
}

// Error returns the error message.
func (e *InvalidPatternError) Error() string {
	return fmt.Sprintf("redaction policy: rule %d: invalid search pattern %q: %v", e.Rule, e.Pattern, e.Cause)
}

// Unwrap returns the underlying cause.
func (e *InvalidPatternError) Unwrap() error {
	return e.Cause
}
