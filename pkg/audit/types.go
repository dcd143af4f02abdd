package audit

import (
	"context"
	"time"
)

// Record captures one rule firing against one log message. It holds
// rule metadata only, never the matched text.
type Record struct {
	// ID is a UUID v4 assigned by the recorder.
	ID string `json:"id"`

	// Timestamp is when the redaction happened.
	Timestamp time.Time `json:"timestamp"`

	// Source identifies where the message came from (e.g. "stdin",
	// or a logger component name).
	Source string `json:"source"`

	// RuleDescription is the informational description of the rule
	// that fired.
	RuleDescription string `json:"rule_description"`

	// Trigger is the rule's trigger substring ("" for always-on rules).
	Trigger string `json:"trigger"`

	// MatchCount is the number of replacements the rule made in the
	// message.
	MatchCount int `json:"match_count"`
}

// Query defines filter parameters for querying audit records.
type Query struct {
	// StartTime and EndTime bound the Timestamp, inclusive. Nil means
	// unbounded.
	StartTime *time.Time `json:"start_time,omitempty"`
	EndTime   *time.Time `json:"end_time,omitempty"`

	// Trigger filters by the rule trigger; empty means any.
	Trigger string `json:"trigger,omitempty"`

	// Source filters by message source; empty means any.
	Source string `json:"source,omitempty"`

	// Limit and Offset paginate results. A zero Limit means no limit.
	Limit  int `json:"limit,omitempty"`
	Offset int `json:"offset,omitempty"`
}

// Storage defines the interface for audit storage backends.
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists an audit record.
	Store(ctx context.Context, record *Record) error

	// Query retrieves records matching the query filters, oldest
	// first. Returns an empty slice when nothing matches.
	Query(ctx context.Context, query *Query) ([]*Record, error)

	// Count returns the number of records matching the query filters.
	Count(ctx context.Context, query *Query) (int64, error)

	// Delete removes records matching the query filters and returns
	// the number removed. Used for retention enforcement.
	Delete(ctx context.Context, query *Query) (int64, error)

	// Close releases any resources held by the backend.
	Close() error
}
