package filename_test

import (
	"errors"
	"testing"
	"time"

	"midicat/internal/failures"
	"midicat/internal/filename"
	"midicat/internal/scanner"
)

func TestParseAccepts(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		wantCode   int
		wantLabel  string
		wantTitle  string
		wantArtist string
	}{
		{"midi with underscore and apostrophe", "3-My_Song-John's Band.midi", 3, "중급", "My Song", "John's Band"},
		{"plain mid", "1-Canon-Pachelbel.mid", 1, "초급", "Canon", "Pachelbel"},
		{"code two shares beginner label", "2-Canon-Pachelbel.mid", 2, "초급", "Canon", "Pachelbel"},
		{"advanced", "4-Fantaisie_Impromptu-Chopin.mid", 4, "고급", "Fantaisie Impromptu", "Chopin"},
		{"expert hangul", "5-봄날-방탄소년단.mid", 5, "최상", "봄날", "방탄소년단"},
		{"notation suffix stripped", "3-Title-Artist.mscz.mid", 3, "중급", "Title", "Artist"},
		{"musicxml suffix stripped", "3-Title-Artist.musicxml.midi", 3, "중급", "Title", "Artist"},
		{"only one notation suffix", "3-Title-Artist.mxl.mxl.mid", 3, "중급", "Title", "Artist mxl"},
		{"punctuation normalized", "4-Hello,World!-A.B.mid", 4, "고급", "Hello World", "A B"},
		{"only one midi extension removed", "2-Song-Artist.mid.midi", 2, "초급", "Song", "Artist mid"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, err := filename.Parse(tt.input)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tt.input, err)
			}
			if rec.DifficultyCode != tt.wantCode || rec.DifficultyLabel != tt.wantLabel {
				t.Errorf("difficulty = %d/%q, want %d/%q", rec.DifficultyCode, rec.DifficultyLabel, tt.wantCode, tt.wantLabel)
			}
			if rec.Title != tt.wantTitle || rec.Artist != tt.wantArtist {
				t.Errorf("title/artist = %q/%q, want %q/%q", rec.Title, rec.Artist, tt.wantTitle, tt.wantArtist)
			}
			if rec.Filename != tt.input {
				t.Errorf("filename = %q, want %q", rec.Filename, tt.input)
			}
		})
	}
}

func TestParseRejects(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		reason filename.Reason
	}{
		{"difficulty out of range", "6-Song-Artist.mid", filename.ReasonDifficulty},
		{"difficulty zero", "0-Song-Artist.mid", filename.ReasonDifficulty},
		{"multi digit difficulty", "12-Song-Artist.mid", filename.ReasonDifficulty},
		{"non digit difficulty", "A-Song-Artist.mid", filename.ReasonDifficulty},
		{"padded difficulty", " 3-Song-Artist.mid", filename.ReasonDifficulty},
		{"empty difficulty", "-Song-Artist.mid", filename.ReasonDifficulty},
		{"four segments", "1-A-B-C.mid", filename.ReasonSegmentCount},
		{"two segments", "1-Song.mid", filename.ReasonSegmentCount},
		{"no hyphen", "Song.mid", filename.ReasonSegmentCount},
		{"hyphen in artist", "3-Song-Jay-Z.mid", filename.ReasonSegmentCount},
		{"empty title", "3--Artist.mid", filename.ReasonEmptyField},
		{"empty artist", "3-Song-.mid", filename.ReasonEmptyField},
		{"title only punctuation", "3-!!!-Artist.mid", filename.ReasonEmptyAfterCleanup},
		{"artist only notation suffix", "3-Song-.mscz.mid", filename.ReasonEmptyAfterCleanup},
		{"uppercase extension", "3-Song-Artist.MID", filename.ReasonExtension},
		{"other extension", "3-Song-Artist.mp3", filename.ReasonExtension},
		{"invalid utf8 in title", "2-Song\xff-Band.mid", filename.ReasonEncoding},
		{"invalid utf8 only byte", "2-\xfe-Band.mid", filename.ReasonEncoding},
		{"truncated hangul", "2-\xea\xb0-Band.mid", filename.ReasonEncoding},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := filename.Parse(tt.input)
			if err == nil {
				t.Fatalf("Parse(%q) expected rejection", tt.input)
			}
			var rej *filename.RejectionError
			if !errors.As(err, &rej) {
				t.Fatalf("expected *RejectionError, got %T", err)
			}
			if rej.Reason != tt.reason {
				t.Fatalf("reason = %q, want %q (%v)", rej.Reason, tt.reason, err)
			}
			if !errors.Is(err, failures.ErrGrammar) {
				t.Fatalf("expected rejection to match ErrGrammar")
			}
		})
	}
}

func TestParseHyphenCountProperty(t *testing.T) {
	stems := []string{"", "1", "1-a", "1-a-b-c", "1-a-b-c-d", "--", "---", "1-a--b"}
	for _, stem := range stems {
		for _, ext := range []string{".mid", ".midi"} {
			if _, err := filename.Parse(stem + ext); err == nil {
				t.Errorf("Parse(%q) accepted a stem without exactly two hyphens", stem+ext)
			}
		}
	}
}

func TestParseLabelTableProperty(t *testing.T) {
	want := map[int]string{1: "초급", 2: "초급", 3: "중급", 4: "고급", 5: "최상"}
	for code, label := range want {
		for _, ext := range []string{".mid", ".midi"} {
			input := string(rune('0'+code)) + "-Title-Artist" + ext
			rec, err := filename.Parse(input)
			if err != nil {
				t.Fatalf("Parse(%q): %v", input, err)
			}
			if rec.DifficultyLabel != label || rec.DifficultyCode != code {
				t.Fatalf("Parse(%q) = %d/%q, want %d/%q", input, rec.DifficultyCode, rec.DifficultyLabel, code, label)
			}
		}
	}
	if _, ok := filename.DifficultyLabel(6); ok {
		t.Fatal("expected code 6 to have no label")
	}
}

func TestFromFileAttachesStat(t *testing.T) {
	mod := time.Date(2026, 5, 4, 3, 2, 1, 0, time.UTC)
	rec, err := filename.FromFile(scanner.File{Name: "1-A-B.mid", Size: 1234, ModTime: mod})
	if err != nil {
		t.Fatalf("FromFile: %v", err)
	}
	if rec.FileSize != 1234 || !rec.ModTime.Equal(mod) {
		t.Fatalf("unexpected stat fields: %+v", rec)
	}
	if _, err := filename.FromFile(scanner.File{Name: "bad.mid"}); err == nil {
		t.Fatal("expected rejection for bad name")
	}
}

func TestAsRejection(t *testing.T) {
	_, err := filename.Parse("1-A-B-C.mid")
	rej := filename.AsRejection("1-A-B-C.mid", err)
	if rej.Reason != filename.ReasonSegmentCount || rej.Filename != "1-A-B-C.mid" || rej.Detail == "" {
		t.Fatalf("unexpected rejection %+v", rej)
	}

	other := filename.AsRejection("x.mid", errors.New("stat failed"))
	if other.Reason != "" || other.Detail != "stat failed" || other.Filename != "x.mid" {
		t.Fatalf("unexpected rejection %+v", other)
	}
}
