package catalogrun

import (
	"log/slog"
	"time"

	"midicat/internal/catalog"
	"midicat/internal/config"
	"midicat/internal/dedup"
	"midicat/internal/filename"
	"midicat/internal/history"
	"midicat/internal/organizer"
	"midicat/internal/publish"
	"midicat/internal/scanner"
)

// Outcome classifies how a run ended.
type Outcome string

const (
	OutcomeWritten    Outcome = "written"
	OutcomeDryRun     Outcome = "dry_run"
	OutcomeNoInput    Outcome = "no_input"
	OutcomeNoAccepted Outcome = "no_accepted"
	OutcomeCancelled  Outcome = "cancelled"
	OutcomeFailed     Outcome = "failed"
)

// Options selects what a run scans and how it publishes.
type Options struct {
	SourceDir  string
	OutputPath string
	DryRun     bool
	Quarantine bool
	Confirmer  publish.Confirmer
}

// Dependencies carries the collaborators of a run. Logger and History may be nil.
type Dependencies struct {
	Config  *config.Config
	Logger  *slog.Logger
	History *history.Store
	Now     func() time.Time
}

// Result reports everything a run observed.
type Result struct {
	RunID       string
	Outcome     Outcome
	SourceDir   string
	OutputPath  string
	Files       []scanner.File
	Unreadable  []scanner.Skip
	Accepted    []filename.Record
	Rejected    []filename.Rejection
	Duplicates  []dedup.Duplicate
	Document    catalog.Document
	Encoded     []byte
	BackupPath  string
	PriorCount  int
	Quarantined []organizer.Move
	StartedAt   time.Time
	FinishedAt  time.Time
}
