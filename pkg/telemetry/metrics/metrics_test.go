package metrics

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"

	"logveil-hq/logveil/pkg/redact"
)

func TestRecordRedaction(t *testing.T) {
	m := New()

	m.RecordRedaction(nil, time.Microsecond)
	m.RecordRedaction([]redact.Match{
		{Description: "ssn", Trigger: "SSN", Count: 2},
		{Description: "password", Trigger: "", Count: 1},
	}, 2*time.Microsecond)

	if got := testutil.ToFloat64(m.messagesScanned); got != 2 {
		t.Errorf("messages_scanned = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.messagesRedacted); got != 1 {
		t.Errorf("messages_redacted = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.ruleApplications.WithLabelValues("SSN")); got != 2 {
		t.Errorf("rule_applications{SSN} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(m.ruleApplications.WithLabelValues(emptyTriggerLabel)); got != 1 {
		t.Errorf("rule_applications{%s} = %v, want 1", emptyTriggerLabel, got)
	}
}

func TestRecordLoadFailure(t *testing.T) {
	m := New()
	m.RecordLoadFailure()
	m.RecordLoadFailure()

	if got := testutil.ToFloat64(m.loadFailures); got != 2 {
		t.Errorf("load_failures = %v, want 2", got)
	}
}

func TestHandler(t *testing.T) {
	m := New()
	m.RecordRedaction([]redact.Match{{Trigger: "SSN", Count: 1}}, time.Microsecond)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/metrics", nil)
	m.Handler().ServeHTTP(rec, req)

	if rec.Code != 200 {
		t.Fatalf("Handler status = %d, want 200", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "logveil_messages_scanned_total") {
		t.Error("Exposition output missing logveil_messages_scanned_total")
	}
	if !strings.Contains(body, `logveil_rule_applications_total{trigger="SSN"}`) {
		t.Error("Exposition output missing rule applications series")
	}
}
