package catalog_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"midicat/internal/catalog"
	"midicat/internal/filename"
)

func rec(name, title, artist, label string, size int64, mod time.Time) filename.Record {
	return filename.Record{
		Filename:        name,
		Title:           title,
		Artist:          artist,
		DifficultyLabel: label,
		FileSize:        size,
		ModTime:         mod,
	}
}

func TestBuildOrdersNewestFirst(t *testing.T) {
	t1 := time.Date(2024, 5, 3, 10, 0, 0, 0, time.UTC)
	t2 := t1.Add(-48 * time.Hour)
	t3 := t1.Add(-time.Hour)
	input := []filename.Record{
		rec("r1.mid", "One", "A", "초급", 1, t1),
		rec("r2.mid", "Two", "A", "중급", 2, t2),
		rec("r3.mid", "Three", "A", "고급", 3, t3),
	}

	doc := catalog.Build(input, catalog.BuildOptions{BaseDir: "songs", Now: t1})

	want := []string{"r1.mid", "r3.mid", "r2.mid"}
	if len(doc.Files) != len(want) {
		t.Fatalf("expected %d files, got %d", len(want), len(doc.Files))
	}
	for i, name := range want {
		if doc.Files[i].Filename != name {
			t.Fatalf("position %d = %q, want %q", i, doc.Files[i].Filename, name)
		}
	}
	if input[0].Filename != "r1.mid" || input[1].Filename != "r2.mid" {
		t.Fatal("input slice was reordered")
	}
}

func TestBuildKeepsScanOrderForTies(t *testing.T) {
	same := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	input := []filename.Record{
		rec("a.mid", "A", "X", "초급", 1, same),
		rec("b.mid", "B", "X", "초급", 1, same.Add(time.Minute)),
		rec("c.mid", "C", "X", "초급", 1, same),
		rec("d.mid", "D", "X", "초급", 1, same),
	}
	doc := catalog.Build(input, catalog.BuildOptions{})
	got := []string{doc.Files[0].Filename, doc.Files[1].Filename, doc.Files[2].Filename, doc.Files[3].Filename}
	want := []string{"b.mid", "a.mid", "c.mid", "d.mid"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestBuildDocumentFields(t *testing.T) {
	now := time.Date(2024, 7, 9, 8, 5, 3, 0, time.Local)
	doc := catalog.Build([]filename.Record{
		rec("2-Song-Band.mid", "Song", "Band", "초급", 1234, now),
	}, catalog.BuildOptions{BaseDir: "library", Now: now})

	if doc.CreatedDate != "2024-07-09 08:05:03" {
		t.Fatalf("unexpected created date %q", doc.CreatedDate)
	}
	if doc.BaseDir != "library" {
		t.Fatalf("unexpected basedir %q", doc.BaseDir)
	}
	if doc.FileCount != len(doc.Files) || doc.FileCount != 1 {
		t.Fatalf("file count %d does not match %d files", doc.FileCount, len(doc.Files))
	}
	entry := doc.Files[0]
	want := catalog.Entry{Filename: "2-Song-Band.mid", FileSize: 1234, Title: "Song", Artist: "Band", Difficulty: "초급"}
	if entry != want {
		t.Fatalf("entry = %+v, want %+v", entry, want)
	}
}

func TestEncodeKeyOrderAndLiteralText(t *testing.T) {
	doc := catalog.Document{
		CreatedDate: "2024-01-02 03:04:05",
		BaseDir:     "악보 <모음> & more",
		FileCount:   1,
		Files: []catalog.Entry{{
			Filename:   "3-아리랑-민요.mid",
			FileSize:   42,
			Title:      "아리랑",
			Artist:     "민요",
			Difficulty: "중급",
		}},
	}
	var buf bytes.Buffer
	if err := catalog.Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()

	order := []string{`"created_date"`, `"basedir"`, `"file_count"`, `"files"`, `"filename"`, `"file_size"`, `"title"`, `"artist"`, `"difficulty"`, `"youtube"`}
	last := -1
	for _, key := range order {
		idx := strings.Index(out, key)
		if idx < 0 {
			t.Fatalf("missing key %s in %s", key, out)
		}
		if idx < last {
			t.Fatalf("key %s out of order in %s", key, out)
		}
		last = idx
	}
	for _, literal := range []string{"아리랑", "<모음> & more", `"youtube": ""`, `"file_count": 1`} {
		if !strings.Contains(out, literal) {
			t.Fatalf("expected %q in output:\n%s", literal, out)
		}
	}
	if !strings.HasSuffix(out, "}\n") {
		t.Fatalf("expected trailing newline, got %q", out[len(out)-3:])
	}
}

func TestEncodeEscapesControlCharactersAndRoundTrips(t *testing.T) {
	doc := catalog.Document{
		CreatedDate: "2024-01-02 03:04:05",
		BaseDir:     "back\\slash \"quoted\"\nline\r\ttab",
		FileCount:   0,
	}
	var buf bytes.Buffer
	if err := catalog.Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.String()
	for _, escaped := range []string{`\\`, `\"`, `\n`, `\r`, `\t`} {
		if !strings.Contains(out, escaped) {
			t.Fatalf("expected escape %s in %s", escaped, out)
		}
	}
	if !strings.Contains(out, `"files": []`) {
		t.Fatalf("expected empty files array, got %s", out)
	}

	back, err := catalog.Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if back.BaseDir != doc.BaseDir {
		t.Fatalf("basedir round trip = %q, want %q", back.BaseDir, doc.BaseDir)
	}
}

func TestMarshalMatchesEncode(t *testing.T) {
	doc := catalog.Build(nil, catalog.BuildOptions{BaseDir: "x", Now: time.Unix(0, 0)})
	data, err := catalog.Marshal(doc)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	var buf bytes.Buffer
	if err := catalog.Encode(&buf, doc); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if !bytes.Equal(data, buf.Bytes()) {
		t.Fatalf("Marshal and Encode differ:\n%s\n%s", data, buf.Bytes())
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := catalog.Decode(strings.NewReader("not json")); err == nil {
		t.Fatal("expected decode error")
	}
}
