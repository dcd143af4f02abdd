package redact

import "sync"

// Redactor is the concurrent entry point for redaction. It shares one
// immutable RuleStore across all callers and hands each call a pooled
// Matcher, so parallel callers never serialize on a lock and matcher
// scratch state is never shared between goroutines.
type Redactor struct {
	store *RuleStore
	pool  sync.Pool
}

// NewRedactor creates a Redactor over an already-built store.
func NewRedactor(store *RuleStore) *Redactor {
	r := &Redactor{store: store}
	r.pool.New = func() any { return store.NewMatcher() }
	return r
}

// NewFromFile builds a Redactor from a JSON policy file. Load errors
// are fatal to construction; see the package error taxonomy.
func NewFromFile(path string) (*Redactor, error) {
	store, err := LoadFile(path)
	if err != nil {
		return nil, err
	}
	return NewRedactor(store), nil
}

// Store returns the shared rule store.
func (r *Redactor) Store() *RuleStore { return r.store }

// Redact returns msg with all matching rules applied. Safe for
// concurrent use; never fails.
func (r *Redactor) Redact(msg string) string {
	if r.store.count == 0 {
		return msg
	}
	m := r.pool.Get().(*Matcher)
	out := m.Redact(msg)
	r.pool.Put(m)
	return out
}

// Apply is Redact plus a report of the rules that fired. The report is
// nil when the message comes back unchanged.
func (r *Redactor) Apply(msg string) (string, []Match) {
	if r.store.count == 0 {
		return msg, nil
	}
	m := r.pool.Get().(*Matcher)
	out, matches := m.Apply(msg)
	r.pool.Put(m)
	return out, matches
}
