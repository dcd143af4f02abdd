// Package retention enforces retention policy on stored audit
// records.
//
// A Pruner deletes records in two phases: age-based (records older
// than the retention period) and count-based (oldest records beyond a
// maximum count). A cron-driven Scheduler runs the pruner on a
// configurable schedule, typically nightly.
package retention
