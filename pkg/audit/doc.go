// Package audit defines the redaction audit trail.
//
// Every time a redaction rule fires, the engine can record which rule
// matched and how many replacements it made. Audit records never carry
// the matched text or the produced replacement — only rule metadata —
// so the trail itself cannot leak what the rules exist to hide.
//
// The package defines the Record and Query types and the Storage
// interface. Backends live in the storage subpackage (SQLite and
// in-memory), asynchronous recording in the recorder subpackage, and
// retention pruning in the retention subpackage.
package audit
