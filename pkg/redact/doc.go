// Package redact implements rule-based redaction of sensitive substrings
// from free-text log messages.
//
// # Overview
//
// Rules are loaded once from a JSON policy file and compiled into an
// immutable RuleStore. Each rule pairs a plain trigger substring with a
// regular expression and a replacement template. At redaction time the
// trigger acts as a cheap pre-filter: the regular expression only runs
// against messages that contain the trigger, which keeps the common
// no-match case fast.
//
// # Usage
//
//	redactor, err := redact.NewFromFile("redaction-rules.json")
//	if err != nil {
//	    return err
//	}
//
//	clean := redactor.Redact("SSN: 123-45-6789")
//	// clean == "SSN: XXX-XX-XXXX"
//
// Redactor.Redact is safe for concurrent use from any number of
// goroutines and never fails: once a policy loads successfully, every
// input string produces an output string.
//
// # Policy format
//
//	{
//	  "version": 1,
//	  "rules": [
//	    { "description": "mask social security numbers",
//	      "trigger": "SSN",
//	      "search": "\\d{3}-\\d{2}-\\d{4}",
//	      "replace": "XXX-XX-XXXX" }
//	  ]
//	}
//
// A zero-length policy file is a valid "no rules" policy. The version
// field is required and must equal 1. Rules apply in file order, and a
// rule sees the output of the rules before it, so rule interaction is
// deterministic for a fixed policy file.
//
// # Concurrency
//
// The RuleStore is built once and never mutated, so it is shared by all
// goroutines without locking. Mutable match scratch lives in Matcher
// values, each owned by a single goroutine. Redactor manages a pool of
// Matchers so hot-path callers never serialize on a lock.
package redact
