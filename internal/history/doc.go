// Package history keeps a SQLite ledger of catalog runs.
//
// Each run stores its outcome and counters only; parsed records live in the
// catalog itself. Schema changes bump the version in schema.go; users delete
// the database to adopt the new schema.
package history
