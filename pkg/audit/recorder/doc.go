// Package recorder creates audit records from rule firings and writes
// them to a storage backend asynchronously.
//
// Recording must never slow down the redaction hot path, so Record
// enqueues onto a buffered channel and a background worker drains the
// channel into storage. When the channel is full the record is dropped
// and a counter is logged; redaction itself is never blocked.
//
//	recorder := recorder.NewRecorder(storage, nil)
//	defer recorder.Close()
//
//	redacted, matches := red.Apply(line)
//	recorder.Record(ctx, "stdin", matches)
package recorder
