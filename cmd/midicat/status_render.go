package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
)

// statusKind grades one row of a run summary.
type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

type statusStyle struct {
	tag   string
	color string
}

var statusStyles = [...]statusStyle{
	statusInfo:  {tag: "INFO", color: ansiBlue},
	statusOK:    {tag: "OK", color: ansiGreen},
	statusWarn:  {tag: "WARN", color: ansiYellow},
	statusError: {tag: "ERROR", color: ansiRed},
}

func (k statusKind) style() statusStyle {
	if k < 0 || int(k) >= len(statusStyles) {
		return statusStyles[statusInfo]
	}
	return statusStyles[k]
}

// countStatus grades a per-file tally where any non-zero count needs the
// operator's attention (rejections, duplicates, unreadable entries).
func countStatus(n int) statusKind {
	if n > 0 {
		return statusWarn
	}
	return statusOK
}

const (
	summaryIndent = "  "
	// Narrowest label column; a longer label widens the whole block.
	minSummaryLabelWidth = len("Duplicates:")
)

type summaryRow struct {
	label   string
	kind    statusKind
	message string
}

// summaryBlock is a titled group of rows whose labels share one column width.
type summaryBlock struct {
	title string
	rows  []summaryRow
}

func (b *summaryBlock) add(label string, kind statusKind, message string) {
	b.rows = append(b.rows, summaryRow{label: label, kind: kind, message: message})
}

// addFiles adds a file tally; graded tallies warn when non-zero.
func (b *summaryBlock) addFiles(label string, n int, graded bool) {
	kind := statusInfo
	if graded {
		kind = countStatus(n)
	}
	b.add(label, kind, countNoun(n, "file"))
}

func (b summaryBlock) labelWidth() int {
	width := minSummaryLabelWidth
	for _, row := range b.rows {
		if n := len(row.label) + 1; n > width {
			width = n
		}
	}
	return width
}

func (b summaryBlock) render(colorize bool) []string {
	heading := fmt.Sprintf("== %s ==", strings.TrimSpace(b.title))
	lines := make([]string, 0, len(b.rows)+2)
	lines = append(lines,
		paint(heading, ansiBlue, colorize),
		paint(strings.Repeat("-", len(heading)), ansiBlue, colorize),
	)
	width := b.labelWidth()
	for _, row := range b.rows {
		lines = append(lines, row.render(width, colorize))
	}
	return lines
}

func (r summaryRow) render(width int, colorize bool) string {
	style := r.kind.style()
	status := "[" + style.tag + "]"
	if r.message != "" {
		status += " " + r.message
	}
	line := fmt.Sprintf("%s%-*s %s", summaryIndent, width, r.label+":", status)
	return paint(line, style.color, colorize)
}

func paint(text, color string, colorize bool) string {
	if !colorize || color == "" {
		return text
	}
	return color + text + ansiReset
}

func writeLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
