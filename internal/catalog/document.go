package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"midicat/internal/filename"
)

// CreatedDateLayout formats Document.CreatedDate.
const CreatedDateLayout = "2006-01-02 15:04:05"

// Document is the catalog written to disk.
type Document struct {
	CreatedDate string  `json:"created_date"`
	BaseDir     string  `json:"basedir"`
	FileCount   int     `json:"file_count"`
	Files       []Entry `json:"files"`
}

// Entry describes one catalogued file.
type Entry struct {
	Filename   string `json:"filename"`
	FileSize   int64  `json:"file_size"`
	Title      string `json:"title"`
	Artist     string `json:"artist"`
	Difficulty string `json:"difficulty"`
	YouTube    string `json:"youtube"`
}

// BuildOptions carries the document-level values.
type BuildOptions struct {
	BaseDir string
	Now     time.Time
}

// Build orders records by timestamp, newest first, and assembles the document.
// The input slice is not modified.
func Build(records []filename.Record, opts BuildOptions) Document {
	sorted := make([]filename.Record, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].ModTime.After(sorted[j].ModTime)
	})

	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}

	files := make([]Entry, 0, len(sorted))
	for _, rec := range sorted {
		files = append(files, EntryFor(rec))
	}
	return Document{
		CreatedDate: now.Local().Format(CreatedDateLayout),
		BaseDir:     opts.BaseDir,
		FileCount:   len(files),
		Files:       files,
	}
}

// EntryFor maps a record onto its catalog entry.
func EntryFor(rec filename.Record) Entry {
	return Entry{
		Filename:   rec.Filename,
		FileSize:   rec.FileSize,
		Title:      rec.Title,
		Artist:     rec.Artist,
		Difficulty: rec.DifficultyLabel,
		YouTube:    "",
	}
}

// Encode writes doc as indented JSON followed by a newline.
func Encode(w io.Writer, doc Document) error {
	if doc.Files == nil {
		doc.Files = []Entry{}
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return nil
}

// Marshal returns the encoded form of doc.
func Marshal(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode reads a catalog previously written by Encode.
func Decode(r io.Reader) (Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		return Document{}, fmt.Errorf("decode catalog: %w", err)
	}
	return doc, nil
}
