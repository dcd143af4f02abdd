// Package storage provides audit storage backends.
//
// SQLiteStorage is the production backend: a single-file database with
// WAL mode, a schema version table, and indexes on the queried
// columns. MemoryStorage backs tests and the "memory" audit backend
// for deployments that only want live metrics.
package storage
