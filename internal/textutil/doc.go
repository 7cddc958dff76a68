// Package textutil canonicalizes the free-text fields carried in catalog
// filenames.
//
// Normalize reduces titles and artists to a restricted alphabet (ASCII letters
// and digits, Hangul syllables, apostrophes, single spaces) so that duplicate
// detection can compare fields with plain string equality. Runs of conjoining
// Hangul jamo, as some filesystems hand back, are composed into syllable
// blocks first; no other composition takes place.
package textutil
