// Package store persists game-data documents as one JSON file per
// collection, language or version record under a configurable data path.
//
// # Layout
//
// Every document is a serialized Document ({version, data}) except the
// lookup tables, which are bare mappings rebuilt fresh on every update and
// never read-validated.
//
// # Self-healing reads
//
// The Validated wrapper re-checks a document's version against the expected
// one on every read. A missing, malformed or stale document triggers exactly
// one forced full synchronization before the read is retried; a second
// failure is reported to the caller as a terminal error.
//
// # Mirroring
//
// With the s3 backend, writes are replicated to an object storage bucket
// and locally missing documents are restored from it, which spares a full
// upstream resynchronization after losing the data directory.
package store
