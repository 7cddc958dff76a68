package textutil

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const (
	hangulSyllableFirst = '가'
	hangulSyllableLast  = '힣'

	conjoiningJamoFirst = 'ᄀ'
	conjoiningJamoLast  = 'ᇿ'
)

// Normalize canonicalizes a title or artist field. Underscores and every rune
// outside the allowed set become separators, separator runs collapse to one
// space, and the result is trimmed. It never fails and is idempotent.
func Normalize(text string) string {
	text = composeHangul(text)

	var b strings.Builder
	b.Grow(len(text))
	pendingSpace := false
	for _, r := range text {
		if !keepRune(r) {
			pendingSpace = true
			continue
		}
		if pendingSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		pendingSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// composeHangul folds conjoining jamo into syllable blocks. Only runs made of
// jamo and syllables go through NFC, so combining marks elsewhere stay
// separate from the letters they follow.
func composeHangul(text string) string {
	if !strings.ContainsFunc(text, isConjoiningJamo) {
		return text
	}

	var b strings.Builder
	b.Grow(len(text))
	start := -1
	hasJamo := false
	flush := func(end int) {
		if start < 0 {
			return
		}
		run := text[start:end]
		if hasJamo {
			run = norm.NFC.String(run)
		}
		b.WriteString(run)
		start, hasJamo = -1, false
	}
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRuneInString(text[i:])
		if isConjoiningJamo(r) || isHangulSyllable(r) {
			if start < 0 {
				start = i
			}
			hasJamo = hasJamo || isConjoiningJamo(r)
		} else {
			flush(i)
			b.WriteString(text[i : i+size])
		}
		i += size
	}
	flush(len(text))
	return b.String()
}

func isConjoiningJamo(r rune) bool {
	return r >= conjoiningJamoFirst && r <= conjoiningJamoLast
}

func isHangulSyllable(r rune) bool {
	return r >= hangulSyllableFirst && r <= hangulSyllableLast
}

func keepRune(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return true
	case r == '\'':
		return true
	case isHangulSyllable(r):
		return true
	default:
		return false
	}
}
