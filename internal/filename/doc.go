// Package filename parses catalog entries out of file names.
//
// The grammar is strict: "<difficulty>-<title>-<artist>.mid" (or ".midi"),
// split naively on every hyphen into exactly three parts. There is no greedy or
// lazy re-joining, so a hyphen inside a title or artist rejects the file. An
// optional notation-export suffix (".mscz", ".mscx", ".mxl", ".musicxml") is
// dropped from the artist before normalization. Names that are not valid UTF-8
// are rejected outright since they cannot be written back faithfully as JSON.
//
// Parse returns a Record or a *RejectionError; rejections are per-file and
// never abort a run.
package filename
