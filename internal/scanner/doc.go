// Package scanner lists candidate catalog files in a directory.
//
// Listing is non-recursive and stat-only: file contents are never opened.
// Symlinks count as candidates when they resolve to a regular file; entries
// that cannot be stat'ed are reported as skips rather than failing the scan.
// Each File carries a single resolved timestamp; callers choose whether that
// timestamp is the modification time or the birth time (with fallbacks) and
// otherwise treat it as opaque.
package scanner
