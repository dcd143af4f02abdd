package redact

import (
	"encoding/json"
	"fmt"
	"os"
	"regexp"
)

// triggerGroup holds the compiled rules sharing one trigger substring,
// in policy file order.
type triggerGroup struct {
	trigger string
	rules   []*CompiledRule
}

// RuleStore is the shared, immutable collection of compiled rules,
// grouped by trigger. Groups keep the order in which their triggers
// first appear in the policy file, and rules keep file order within
// each group, so rule application is deterministic across runs.
//
// A RuleStore is fully constructed before it is published and never
// mutated afterward; it is safe for concurrent read access without
// locking.
type RuleStore struct {
	groups []triggerGroup
	count  int
}

// Load parses and validates a policy document and builds a RuleStore.
//
// Empty input is a valid zero-rule policy and returns an empty store
// without attempting a parse. Any validation failure aborts the load at
// the first violation in file order; no partial store is produced.
func Load(data []byte) (*RuleStore, error) {
	s := &RuleStore{}
	if len(data) == 0 {
		return s, nil
	}

	doc := policyDocument{Version: versionUnset}
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &MalformedPolicyError{Cause: err}
	}

	if doc.Version == versionUnset {
		return nil, ErrMissingVersion
	}
	if doc.Version != SupportedVersion {
		return nil, &UnsupportedVersionError{Version: doc.Version}
	}

	for i, def := range doc.Rules {
		if def.Search == "" {
			return nil, &EmptySearchError{Rule: i}
		}
		if def.Replace == "" {
			return nil, &EmptyReplacementError{Rule: i}
		}
		re, err := regexp.Compile(def.Search)
		if err != nil {
			return nil, &InvalidPatternError{Rule: i, Pattern: def.Search, Cause: err}
		}
		s.add(&CompiledRule{
			description: def.Description,
			trigger:     def.Trigger,
			re:          re,
			replace:     def.Replace,
		})
	}

	return s, nil
}

// LoadFile reads a policy file and builds a RuleStore from it.
//
// A file that exists with zero length is a valid "no rules" policy;
// the check happens before any parse attempt.
func LoadFile(path string) (*RuleStore, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read redaction policy %q: %w", path, err)
	}
	if info.Size() == 0 {
		return &RuleStore{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read redaction policy %q: %w", path, err)
	}

	s, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// add appends a compiled rule to its trigger group, creating the group
// at the end of the order if this is the trigger's first appearance.
func (s *RuleStore) add(rule *CompiledRule) {
	s.count++
	for i := range s.groups {
		if s.groups[i].trigger == rule.trigger {
			s.groups[i].rules = append(s.groups[i].rules, rule)
			return
		}
	}
	s.groups = append(s.groups, triggerGroup{
		trigger: rule.trigger,
		rules:   []*CompiledRule{rule},
	})
}

// Len returns the total number of compiled rules in the store.
func (s *RuleStore) Len() int { return s.count }

// Groups returns the number of trigger groups in the store.
func (s *RuleStore) Groups() int { return len(s.groups) }

// Rules returns the compiled rules in application order (group order,
// then file order within each group).
func (s *RuleStore) Rules() []*CompiledRule {
	out := make([]*CompiledRule, 0, s.count)
	for _, g := range s.groups {
		out = append(out, g.rules...)
	}
	return out
}
