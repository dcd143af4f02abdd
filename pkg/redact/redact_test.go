package redact

import (
	"fmt"
	"sync"
	"testing"
)

func mustLoad(t *testing.T, data string) *RuleStore {
	t.Helper()
	store, err := Load([]byte(data))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	return store
}

func TestRedact_SSN(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"SSN","search":"\\d{3}-\\d{2}-\\d{4}","replace":"XXX-XX-XXXX"}
	]}`)
	m := store.NewMatcher()

	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "trigger and pattern present",
			input: "SSN: 123-45-6789",
			want:  "SSN: XXX-XX-XXXX",
		},
		{
			name:  "no trigger",
			input: "no ssn here",
			want:  "no ssn here",
		},
		{
			name:  "pattern without trigger is skipped",
			input: "number 123-45-6789 only",
			want:  "number 123-45-6789 only",
		},
		{
			name:  "multiple matches all replaced",
			input: "SSN 123-45-6789 and 987-65-4321",
			want:  "SSN XXX-XX-XXXX and XXX-XX-XXXX",
		},
		{
			name:  "empty message",
			input: "",
			want:  "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := m.Redact(tt.input); got != tt.want {
				t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestRedact_ChainingWithinTriggerGroup(t *testing.T) {
	// Two rules share the "secret" trigger. The group's trigger test
	// runs once against the message at group entry, so the second rule
	// still runs even though the first rule removed the trigger text,
	// and it sees the first rule's output.
	store := mustLoad(t, `{"version":1,"rules":[
		{"description":"A","trigger":"secret","search":"secret","replace":"[redacted]"},
		{"description":"B","trigger":"secret","search":"\\[redacted\\]","replace":"HIDDEN"}
	]}`)
	m := store.NewMatcher()

	got := m.Redact("the secret is out")
	if got != "the HIDDEN is out" {
		t.Errorf("Redact chained = %q, want %q", got, "the HIDDEN is out")
	}
}

func TestRedact_ChainingAcrossGroups(t *testing.T) {
	// A replacement can introduce text that satisfies a later group's
	// trigger; later triggers are tested against the modified message.
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"alpha","search":"alpha","replace":"beta"},
		{"trigger":"beta","search":"beta","replace":"gamma"}
	]}`)
	m := store.NewMatcher()

	if got := m.Redact("say alpha"); got != "say gamma" {
		t.Errorf("Redact = %q, want %q", got, "say gamma")
	}

	// The reverse order does not chain: by the time "beta" appears the
	// beta group has already been considered.
	store = mustLoad(t, `{"version":1,"rules":[
		{"trigger":"beta","search":"beta","replace":"gamma"},
		{"trigger":"alpha","search":"alpha","replace":"beta"}
	]}`)
	m = store.NewMatcher()

	if got := m.Redact("say alpha"); got != "say beta" {
		t.Errorf("Redact = %q, want %q", got, "say beta")
	}
}

func TestRedact_EmptyTriggerAlwaysRuns(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"search":"password=\\S+","replace":"password=***"}
	]}`)
	m := store.NewMatcher()

	tests := []struct {
		input string
		want  string
	}{
		{"login password=hunter2 ok", "login password=*** ok"},
		{"no credentials here", "no credentials here"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := m.Redact(tt.input); got != tt.want {
			t.Errorf("Redact(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRedact_CaptureGroupReferences(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"user=","search":"user=(\\S+) token=\\S+","replace":"user=$1 token=***"}
	]}`)
	m := store.NewMatcher()

	got := m.Redact("login user=alice token=abc123")
	want := "login user=alice token=***"
	if got != want {
		t.Errorf("Redact = %q, want %q", got, want)
	}
}

func TestRedact_EmptyStore(t *testing.T) {
	store := mustLoad(t, "")
	m := store.NewMatcher()

	inputs := []string{"", "anything at all", "SSN: 123-45-6789"}
	for _, in := range inputs {
		if got := m.Redact(in); got != in {
			t.Errorf("Empty store changed message: %q -> %q", in, got)
		}
	}
}

func TestRedact_NotIdempotentByDesign(t *testing.T) {
	// A rule's own output may re-trigger a later rule; order matters
	// and a second pass can keep rewriting. The contract is a single
	// deterministic pass, not a fixed point.
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"x","search":"x","replace":"y"},
		{"trigger":"y","search":"y","replace":"z"}
	]}`)
	m := store.NewMatcher()

	first := m.Redact("x")
	if first != "z" {
		t.Fatalf("First pass = %q, want %q", first, "z")
	}
}

func TestMatcher_Apply(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"description":"ssn","trigger":"SSN","search":"\\d{3}-\\d{2}-\\d{4}","replace":"XXX-XX-XXXX"},
		{"description":"password","search":"password=\\S+","replace":"password=***"}
	]}`)
	m := store.NewMatcher()

	out, matches := m.Apply("SSN 111-22-3333 password=pw SSN 444-55-6666")
	want := "SSN XXX-XX-XXXX password=*** SSN XXX-XX-XXXX"
	if out != want {
		t.Errorf("Apply message = %q, want %q", out, want)
	}

	if len(matches) != 2 {
		t.Fatalf("Expected 2 matches, got %d: %+v", len(matches), matches)
	}
	if matches[0].Description != "ssn" || matches[0].Count != 2 {
		t.Errorf("First match = %+v, want ssn with count 2", matches[0])
	}
	if matches[1].Description != "password" || matches[1].Count != 1 {
		t.Errorf("Second match = %+v, want password with count 1", matches[1])
	}

	out, matches = m.Apply("nothing sensitive")
	if out != "nothing sensitive" || matches != nil {
		t.Errorf("Apply on clean message = (%q, %v), want unchanged and nil", out, matches)
	}
}

func TestMatcher_ReuseAcrossCalls(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"SSN","search":"\\d{3}-\\d{2}-\\d{4}","replace":"XXX-XX-XXXX"}
	]}`)
	m := store.NewMatcher()

	// The same matcher must produce correct results call after call,
	// including interleaved match and no-match messages.
	for i := 0; i < 100; i++ {
		if got := m.Redact("SSN: 123-45-6789"); got != "SSN: XXX-XX-XXXX" {
			t.Fatalf("Call %d: got %q", i, got)
		}
		if got := m.Redact("clean line"); got != "clean line" {
			t.Fatalf("Call %d: got %q", i, got)
		}
	}
}

func TestRedactor_Concurrent(t *testing.T) {
	store := mustLoad(t, `{"version":1,"rules":[
		{"trigger":"SSN","search":"\\d{3}-\\d{2}-\\d{4}","replace":"XXX-XX-XXXX"},
		{"search":"password=\\S+","replace":"password=***"}
	]}`)
	r := NewRedactor(store)

	const workers = 16
	const iterations = 500

	var wg sync.WaitGroup
	errCh := make(chan error, workers)

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < iterations; i++ {
				in := fmt.Sprintf("worker %d iter %d SSN 123-45-6789 password=w%d", w, i, w)
				want := fmt.Sprintf("worker %d iter %d SSN XXX-XX-XXXX password=***", w, i)
				if got := r.Redact(in); got != want {
					errCh <- fmt.Errorf("worker %d iter %d: got %q, want %q", w, i, got, want)
					return
				}
				if got := r.Redact("clean"); got != "clean" {
					errCh <- fmt.Errorf("worker %d iter %d: clean line changed to %q", w, i, got)
					return
				}
			}
		}(w)
	}

	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Error(err)
	}
}

func TestRedactor_EmptyStoreFastPath(t *testing.T) {
	r := NewRedactor(mustLoad(t, ""))
	if got := r.Redact("unchanged"); got != "unchanged" {
		t.Errorf("Redact = %q, want unchanged", got)
	}
	out, matches := r.Apply("unchanged")
	if out != "unchanged" || matches != nil {
		t.Errorf("Apply = (%q, %v), want unchanged and nil", out, matches)
	}
}
