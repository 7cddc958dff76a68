// Package catalog turns accepted filename records into the JSON catalog
// document.
//
// Entries are ordered newest first by file timestamp. Files sharing a
// timestamp keep their scan order. The encoder writes keys in a fixed order
// and never escapes HTML characters, so Korean text and symbols appear as-is.
package catalog
