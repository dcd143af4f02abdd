// Package metrics provides Prometheus metrics for the redaction engine.
//
// Metrics carries its own registry so tests never collide with the
// global default registry. Mount Handler() on the ops server to expose
// the standard /metrics endpoint.
//
// Exported series:
//   - logveil_messages_scanned_total
//   - logveil_messages_redacted_total
//   - logveil_rule_applications_total{trigger}
//   - logveil_policy_load_failures_total
//   - logveil_redact_duration_seconds
package metrics
