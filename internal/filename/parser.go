package filename

import (
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"midicat/internal/scanner"
	"midicat/internal/textutil"
)

// Longest suffix first so ".midi" wins over ".mid".
var midiExtensions = []string{".midi", ".mid"}

var notationExtensions = []string{".mscz", ".mscx", ".mxl", ".musicxml"}

var difficultyRE = regexp.MustCompile(`^[1-5]$`)

// Record is one accepted catalog entry. Records are built only by Parse and
// FromFile and are treated as immutable values afterwards.
type Record struct {
	DifficultyCode  int
	DifficultyLabel string
	Title           string
	Artist          string
	Filename        string
	FileSize        int64
	ModTime         time.Time
}

// Parse validates name against the grammar and returns the normalized record.
// Size and ModTime are left zero; see FromFile.
func Parse(name string) (Record, error) {
	if !utf8.ValidString(name) {
		return Record{}, reject(name, ReasonEncoding, "file name is not valid UTF-8")
	}
	stem, ok := trimSuffixFrom(name, midiExtensions)
	if !ok {
		return Record{}, reject(name, ReasonExtension, "expected .mid or .midi")
	}

	parts := strings.Split(stem, "-")
	if len(parts) != 3 {
		return Record{}, reject(name, ReasonSegmentCount, "expected 3 hyphen-separated parts, found %d", len(parts))
	}
	rawDifficulty, rawTitle, rawArtist := parts[0], parts[1], parts[2]

	if !difficultyRE.MatchString(rawDifficulty) {
		return Record{}, reject(name, ReasonDifficulty, "difficulty %q is not 1-5", rawDifficulty)
	}
	code, _ := strconv.Atoi(rawDifficulty)
	label, _ := DifficultyLabel(code)

	if rawTitle == "" {
		return Record{}, reject(name, ReasonEmptyField, "title is empty")
	}
	if rawArtist == "" {
		return Record{}, reject(name, ReasonEmptyField, "artist is empty")
	}
	rawArtist, _ = trimSuffixFrom(rawArtist, notationExtensions)

	title := textutil.Normalize(rawTitle)
	if title == "" {
		return Record{}, reject(name, ReasonEmptyAfterCleanup, "title %q has no usable characters", rawTitle)
	}
	artist := textutil.Normalize(rawArtist)
	if artist == "" {
		return Record{}, reject(name, ReasonEmptyAfterCleanup, "artist %q has no usable characters", rawArtist)
	}

	return Record{
		DifficultyCode:  code,
		DifficultyLabel: label,
		Title:           title,
		Artist:          artist,
		Filename:        name,
	}, nil
}

// FromFile parses a scanned file and attaches its size and timestamp.
func FromFile(f scanner.File) (Record, error) {
	rec, err := Parse(f.Name)
	if err != nil {
		return Record{}, err
	}
	rec.FileSize = f.Size
	rec.ModTime = f.ModTime
	return rec, nil
}

// trimSuffixFrom removes the first matching suffix in order.
func trimSuffixFrom(s string, suffixes []string) (string, bool) {
	for _, suffix := range suffixes {
		if strings.HasSuffix(s, suffix) {
			return strings.TrimSuffix(s, suffix), true
		}
	}
	return s, false
}
