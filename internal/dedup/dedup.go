// Package dedup drops repeated (title, artist) pairs from a scan, keeping the
// first file seen.
package dedup

import "midicat/internal/filename"

// Key identifies a catalog entry for duplicate detection. Fields are compared
// exactly, after filename normalization.
type Key struct {
	Title  string
	Artist string
}

// KeyOf returns the duplicate key of a record.
func KeyOf(rec filename.Record) Key {
	return Key{Title: rec.Title, Artist: rec.Artist}
}

// Duplicate reports a file that repeats an earlier file's key.
type Duplicate struct {
	Filename string
	Original string
}

// Filter keeps the first record for each key in input order and reports every
// later record as a duplicate of that first one. File size and timestamps play
// no part in the choice.
func Filter(records []filename.Record) ([]filename.Record, []Duplicate) {
	firstSeen := make(map[Key]filename.Record, len(records))
	kept := make([]filename.Record, 0, len(records))
	var duplicates []Duplicate
	for _, rec := range records {
		key := KeyOf(rec)
		if original, ok := firstSeen[key]; ok {
			duplicates = append(duplicates, Duplicate{Filename: rec.Filename, Original: original.Filename})
			continue
		}
		firstSeen[key] = rec
		kept = append(kept, rec)
	}
	return kept, duplicates
}
