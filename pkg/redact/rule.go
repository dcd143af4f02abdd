package redact

import "regexp"

// SupportedVersion is the only policy document version this package accepts.
const SupportedVersion = 1

// versionUnset marks a document whose version field was absent.
const versionUnset = -1

// RuleDefinition is the raw, user-authored form of a single redaction
// rule as it appears in the policy file. It is a transient parse record:
// definitions are validated and compiled at load time and never escape
// the load boundary.
type RuleDefinition struct {
	// Description says what the rule is for. Informational only.
	Description string `json:"description"`

	// Trigger is a plain substring that must be present in a message
	// before the search pattern runs. An empty trigger disables the
	// pre-filter and the rule is tried against every message.
	Trigger string `json:"trigger"`

	// Search is the regular expression to match. Required, non-empty.
	Search string `json:"search"`

	// Replace is the replacement template. Required, non-empty. It may
	// reference capture groups ($1, ${name}) per regexp.Expand semantics.
	Replace string `json:"replace"`
}

// policyDocument is the transient parse shape of a policy file.
type policyDocument struct {
	Version int              `json:"version"`
	Rules   []RuleDefinition `json:"rules"`
}

// CompiledRule is a validated rule with its search pattern compiled.
// It is immutable after construction and shared read-only by every
// execution context.
type CompiledRule struct {
	description string
	trigger     string
	re          *regexp.Regexp
	replace     string
}

// Description returns the rule's informational description.
func (r *CompiledRule) Description() string { return r.description }

// Trigger returns the rule's trigger substring.
func (r *CompiledRule) Trigger() string { return r.trigger }

// Pattern returns the source text of the rule's search pattern.
func (r *CompiledRule) Pattern() string { return r.re.String() }
