package main

import (
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"midicat/internal/catalogrun"
)

func printScanSummary(out io.Writer, res catalogrun.Result, colorize bool) {
	writeLines(out, scanSummary(res).render(colorize))

	if len(res.Unreadable) > 0 {
		rows := make([][]string, 0, len(res.Unreadable))
		for _, skip := range res.Unreadable {
			rows = append(rows, []string{skip.Name, skip.Err.Error()})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(tableSpec{
			Title:    "Unreadable files",
			Headers:  []string{"File", "Error"},
			Rows:     rows,
			MaxWidth: 60,
		}))
	}
	if len(res.Rejected) > 0 {
		rows := make([][]string, 0, len(res.Rejected))
		for _, rej := range res.Rejected {
			rows = append(rows, []string{rej.Filename, string(rej.Reason), rej.Detail})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(tableSpec{
			Title:    "Rejected files",
			Headers:  []string{"File", "Reason", "Detail"},
			Rows:     rows,
			MaxWidth: 60,
		}))
	}
	if len(res.Duplicates) > 0 {
		rows := make([][]string, 0, len(res.Duplicates))
		for _, dup := range res.Duplicates {
			rows = append(rows, []string{dup.Filename, dup.Original})
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, renderTable(tableSpec{
			Title:    "Duplicates skipped",
			Headers:  []string{"File", "Kept"},
			Rows:     rows,
			MaxWidth: 60,
		}))
	}
}

func scanSummary(res catalogrun.Result) summaryBlock {
	block := summaryBlock{title: "Catalog"}
	if res.SourceDir != "" {
		block.add("Directory", statusInfo, res.SourceDir)
	}
	block.addFiles("Scanned", len(res.Files), false)
	if len(res.Unreadable) > 0 {
		block.addFiles("Unreadable", len(res.Unreadable), true)
	}
	if len(res.Files) > 0 {
		block.addFiles("Accepted", len(res.Accepted), false)
		block.addFiles("Rejected", len(res.Rejected), true)
		block.addFiles("Duplicates", len(res.Duplicates), true)
	}

	kind, message := outcomeStatus(res)
	block.add("Result", kind, message)
	if res.BackupPath != "" {
		block.add("Backup", statusInfo, res.BackupPath)
	}
	if len(res.Quarantined) > 0 {
		block.addFiles("Quarantined", len(res.Quarantined), false)
	}
	return block
}

func outcomeStatus(res catalogrun.Result) (statusKind, string) {
	switch res.Outcome {
	case catalogrun.OutcomeWritten:
		return statusOK, fmt.Sprintf("wrote %s to %s (%s)",
			countNoun(res.Document.FileCount, "entry"), res.OutputPath, humanize.Bytes(uint64(len(res.Encoded))))
	case catalogrun.OutcomeDryRun:
		return statusInfo, fmt.Sprintf("dry run; %s printed, nothing written", countNoun(res.Document.FileCount, "entry"))
	case catalogrun.OutcomeNoInput:
		return statusInfo, "no MIDI files found; nothing to do"
	case catalogrun.OutcomeNoAccepted:
		return statusError, "no file matched <difficulty>-<title>-<artist>.mid; nothing written"
	case catalogrun.OutcomeCancelled:
		return statusWarn, fmt.Sprintf("cancelled; %s left unchanged", res.OutputPath)
	default:
		return statusError, "run failed"
	}
}

func countNoun(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	plural := noun + "s"
	if noun == "entry" {
		plural = "entries"
	}
	return fmt.Sprintf("%s %s", humanize.Comma(int64(n)), plural)
}
