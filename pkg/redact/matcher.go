package redact

import "strings"

// Match reports one rule that fired during a single Apply call.
type Match struct {
	// Description is the rule's informational description.
	Description string

	// Trigger is the rule's trigger substring ("" for always-on rules).
	Trigger string

	// Count is the number of non-overlapping pattern matches replaced.
	Count int
}

// ruleMatcher pairs one compiled rule with the mutable scratch buffer
// used to build its replacements. The buffer is reused across calls so
// steady-state redaction stays allocation-light.
type ruleMatcher struct {
	rule *CompiledRule
	buf  []byte
}

// apply replaces every non-overlapping match of the rule's pattern in
// msg with the rule's replacement template, expanding capture-group
// references. It returns the resulting message and the match count;
// when nothing matches, msg comes back unchanged with count zero.
func (rm *ruleMatcher) apply(msg string) (string, int) {
	locs := rm.rule.re.FindAllStringSubmatchIndex(msg, -1)
	if locs == nil {
		return msg, 0
	}

	buf := rm.buf[:0]
	last := 0
	for _, loc := range locs {
		buf = append(buf, msg[last:loc[0]]...)
		buf = rm.rule.re.ExpandString(buf, rm.rule.replace, msg, loc)
		last = loc[1]
	}
	buf = append(buf, msg[last:]...)
	rm.buf = buf

	return string(buf), len(locs)
}

// matcherGroup mirrors one trigger group of the store.
type matcherGroup struct {
	trigger  string
	matchers []ruleMatcher
}

// Matcher holds the mutable matching state for one execution context.
// It mirrors the shape of the RuleStore it was built from: one
// ruleMatcher per compiled rule, grouped identically.
//
// A Matcher must never be used by more than one goroutine at a time.
// Callers either keep one Matcher per worker for its lifetime, or let
// Redactor pool them.
type Matcher struct {
	groups []matcherGroup
}

// NewMatcher builds a fresh Matcher mirroring the store. The store is
// only read during construction; the Matcher holds no reference back
// to it afterward.
func (s *RuleStore) NewMatcher() *Matcher {
	m := &Matcher{groups: make([]matcherGroup, len(s.groups))}
	for i, g := range s.groups {
		mg := matcherGroup{
			trigger:  g.trigger,
			matchers: make([]ruleMatcher, len(g.rules)),
		}
		for j, rule := range g.rules {
			mg.matchers[j] = ruleMatcher{rule: rule}
		}
		m.groups[i] = mg
	}
	return m
}

// Apply redacts msg and reports which rules fired.
//
// Trigger groups are visited in store order. Each group's trigger is
// first tested with a plain substring scan against the current message
// value; if absent, every rule in the group is skipped without touching
// a regex engine. An empty trigger always passes. Rules within a group
// run in file order against the progressively-modified message, so a
// rule sees the output of the rules before it — including replacements
// that introduce text satisfying a later trigger. No rule runs more
// than once per call.
func (m *Matcher) Apply(msg string) (string, []Match) {
	var matches []Match
	for gi := range m.groups {
		g := &m.groups[gi]
		if g.trigger != "" && !strings.Contains(msg, g.trigger) {
			continue
		}
		for mi := range g.matchers {
			rm := &g.matchers[mi]
			out, n := rm.apply(msg)
			if n == 0 {
				continue
			}
			msg = out
			matches = append(matches, Match{
				Description: rm.rule.description,
				Trigger:     rm.rule.trigger,
				Count:       n,
			})
		}
	}
	return msg, matches
}

// Redact returns msg with every matching rule applied, in order.
// It never fails: a message matching no rule comes back unchanged.
func (m *Matcher) Redact(msg string) string {
	for gi := range m.groups {
		g := &m.groups[gi]
		if g.trigger != "" && !strings.Contains(msg, g.trigger) {
			continue
		}
		for mi := range g.matchers {
			out, n := g.matchers[mi].apply(msg)
			if n > 0 {
				msg = out
			}
		}
	}
	return msg
}
