// Package publish writes the catalog to its output path.
//
// A write holds an advisory lock on "<output>.lock" for its whole
// check-then-replace sequence. When the output already exists the caller's
// Confirmer decides whether to overwrite; an accepted overwrite first copies
// the old catalog to a timestamped backup and then replaces the output
// atomically.
package publish
