package catalogrun

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"midicat/internal/catalog"
	"midicat/internal/dedup"
	"midicat/internal/failures"
	"midicat/internal/filename"
	"midicat/internal/history"
	"midicat/internal/logging"
	"midicat/internal/organizer"
	"midicat/internal/publish"
	"midicat/internal/scanner"
)

const (
	stageScan     = "scan"
	stageParse    = "parse"
	stageDedup    = "dedup"
	stageBuild    = "build"
	stagePublish  = "publish"
	stageOrganize = "organize"
)

// Run executes the catalog pipeline for opts.SourceDir.
//
// An empty directory ends the run with OutcomeNoInput and a nil error. A
// directory whose files all fail the grammar ends with OutcomeNoAccepted and
// an error matching failures.ErrNoAcceptedFiles. A declined overwrite ends
// with OutcomeCancelled and a nil error.
func Run(ctx context.Context, opts Options, deps Dependencies) (Result, error) {
	if deps.Config == nil {
		return Result{Outcome: OutcomeFailed}, failures.Wrap(failures.ErrConfiguration, "run", "load config", "configuration unavailable", nil)
	}
	now := deps.Now
	if now == nil {
		now = time.Now
	}
	baseLogger := logging.NewComponentLogger(deps.Logger, "catalogrun")

	result := Result{
		RunID:      history.NewRunID(),
		StartedAt:  now(),
		PriorCount: -1,
	}
	ctx = logging.WithRunID(ctx, result.RunID)

	err := run(ctx, opts, deps, baseLogger, now, &result)
	result.FinishedAt = now()
	if err != nil && result.Outcome == "" {
		result.Outcome = OutcomeFailed
	}

	logger := logging.WithContext(ctx, baseLogger)
	if err != nil {
		logger.Error("catalog run failed",
			logging.String(logging.FieldEventType, "run_failed"),
			logging.String("outcome", string(result.Outcome)),
			logging.Error(err),
		)
	} else {
		logger.Info("catalog run finished",
			logging.String(logging.FieldEventType, "run_finished"),
			logging.String("outcome", string(result.Outcome)),
			logging.Int("scanned", len(result.Files)),
			logging.Int("accepted", len(result.Accepted)),
			logging.Int("rejected", len(result.Rejected)),
			logging.Int("duplicates", len(result.Duplicates)),
			logging.Int("file_count", result.Document.FileCount),
			logging.Duration("elapsed", result.FinishedAt.Sub(result.StartedAt)),
		)
	}
	recordHistory(ctx, logger, deps.History, result, err)
	return result, err
}

func run(ctx context.Context, opts Options, deps Dependencies, baseLogger *slog.Logger, now func() time.Time, result *Result) error {
	cfg := deps.Config
	sourceDir, err := resolveSourceDir(opts.SourceDir)
	if err != nil {
		return err
	}
	result.SourceDir = sourceDir
	result.OutputPath = opts.OutputPath
	if result.OutputPath == "" {
		result.OutputPath = cfg.OutputPath(sourceDir)
	}

	// scan
	scanCtx := logging.WithStage(ctx, stageScan)
	logger := logging.WithContext(scanCtx, baseLogger)
	timeSource, err := scanner.ParseTimeSource(cfg.Scan.TimeSource)
	if err != nil {
		return failures.Wrap(failures.ErrConfiguration, stageScan, "time source", "", err)
	}
	files, skipped, err := scanner.List(sourceDir, cfg.Scan.Extensions, timeSource)
	if err != nil {
		return failures.Wrap(failures.ErrIO, stageScan, "list directory", sourceDir, err)
	}
	result.Files = files
	result.Unreadable = skipped
	for _, skip := range skipped {
		logging.WarnWithContext(logger, "candidate file skipped", "file_unreadable",
			logging.String("file", skip.Name),
			logging.Error(skip.Err),
			logging.String(logging.FieldErrorHint, "check the file still exists and is readable"),
			logging.String(logging.FieldImpact, "file left out of the catalog"),
		)
	}
	logger.Info("directory scanned",
		logging.String("dir", sourceDir),
		logging.Int("files", len(files)),
		logging.String("time_source", string(timeSource)),
		logging.Bool("dry_run", opts.DryRun),
	)
	if len(files) == 0 {
		result.Outcome = OutcomeNoInput
		logger.Info("no candidate files found; nothing to catalog",
			logging.String(logging.FieldEventType, "no_input"),
		)
		return nil
	}

	// parse
	parseCtx := logging.WithStage(ctx, stageParse)
	logger = logging.WithContext(parseCtx, baseLogger)
	for _, f := range files {
		rec, err := filename.FromFile(f)
		if err != nil {
			rejection := filename.AsRejection(f.Name, err)
			result.Rejected = append(result.Rejected, rejection)
			logger.Info("file rejected",
				logging.String(logging.FieldEventType, "file_rejected"),
				logging.String("file", f.Name),
				logging.String("reason", string(rejection.Reason)),
				logging.String("detail", rejection.Detail),
			)
			continue
		}
		logger.Debug("file parsed",
			logging.String("file", f.Name),
			logging.String("title", rec.Title),
			logging.String("artist", rec.Artist),
			logging.Int("difficulty", rec.DifficultyCode),
			logging.Int64("size", rec.FileSize),
		)
		result.Accepted = append(result.Accepted, rec)
	}
	if len(result.Accepted) == 0 {
		result.Outcome = OutcomeNoAccepted
		return failures.Wrap(failures.ErrNoAcceptedFiles, stageParse, "filter files",
			fmt.Sprintf("%d candidate files rejected", len(result.Rejected)), nil)
	}

	// dedup
	dedupCtx := logging.WithStage(ctx, stageDedup)
	logger = logging.WithContext(dedupCtx, baseLogger)
	kept, duplicates := dedup.Filter(result.Accepted)
	result.Duplicates = duplicates
	for _, dup := range duplicates {
		logger.Info("duplicate skipped",
			logging.String(logging.FieldEventType, "duplicate_skipped"),
			logging.String("file", dup.Filename),
			logging.String("original", dup.Original),
		)
	}

	// build
	buildCtx := logging.WithStage(ctx, stageBuild)
	logger = logging.WithContext(buildCtx, baseLogger)
	result.Document = catalog.Build(kept, catalog.BuildOptions{
		BaseDir: cfg.BasedirLabel(sourceDir),
		Now:     now(),
	})
	encoded, err := catalog.Marshal(result.Document)
	if err != nil {
		return failures.Wrap(failures.ErrIO, stageBuild, "encode catalog", "", err)
	}
	result.Encoded = encoded
	logger.Debug("catalog built",
		logging.Int("file_count", result.Document.FileCount),
		logging.Int("bytes", len(encoded)),
	)

	if opts.DryRun {
		result.Outcome = OutcomeDryRun
		return nil
	}

	// publish
	publishCtx := logging.WithStage(ctx, stagePublish)
	logger = logging.WithContext(publishCtx, baseLogger)
	published, err := publish.Write(publishCtx, result.OutputPath, encoded, publish.Options{
		Confirmer: opts.Confirmer,
		Now:       now,
		Logger:    logger,
	})
	result.PriorCount = published.PriorCount
	if errors.Is(err, publish.ErrDeclined) {
		result.Outcome = OutcomeCancelled
		logger.Info("catalog not written; existing output kept",
			logging.String(logging.FieldEventType, "overwrite_declined"),
			logging.String("output", result.OutputPath),
		)
		return nil
	}
	if err != nil {
		return err
	}
	result.BackupPath = published.BackupPath
	result.Outcome = OutcomeWritten
	logger.Info("catalog written",
		logging.String(logging.FieldEventType, "catalog_written"),
		logging.String("output", result.OutputPath),
		logging.String("backup", result.BackupPath),
		logging.Int("file_count", result.Document.FileCount),
	)

	if !opts.Quarantine {
		return nil
	}

	// organize
	organizeCtx := logging.WithStage(ctx, stageOrganize)
	logger = logging.WithContext(organizeCtx, baseLogger)
	paths := quarantineCandidates(sourceDir, result.Rejected, result.Duplicates)
	org := organizer.New(cfg.QuarantinePath(sourceDir), logger)
	moves, err := org.Quarantine(organizeCtx, paths)
	result.Quarantined = moves
	if err != nil {
		logging.WarnWithContext(logger, "quarantine incomplete", "quarantine_failed",
			logging.Error(err),
			logging.Int("moved", len(moves)),
			logging.Int("requested", len(paths)),
			logging.String(logging.FieldErrorHint, "check permissions on the quarantine directory"),
			logging.String(logging.FieldImpact, "catalog was written; some excluded files remain in place"),
		)
	}
	return nil
}

func resolveSourceDir(dir string) (string, error) {
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", failures.Wrap(failures.ErrIO, stageScan, "resolve directory", dir, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", failures.Wrap(failures.ErrIO, stageScan, "open directory", abs, err)
	}
	if !info.IsDir() {
		return "", failures.Wrap(failures.ErrConfiguration, stageScan, "open directory", abs+" is not a directory", nil)
	}
	return abs, nil
}

func quarantineCandidates(sourceDir string, rejected []filename.Rejection, duplicates []dedup.Duplicate) []string {
	paths := make([]string, 0, len(rejected)+len(duplicates))
	for _, rej := range rejected {
		paths = append(paths, filepath.Join(sourceDir, rej.Filename))
	}
	for _, dup := range duplicates {
		paths = append(paths, filepath.Join(sourceDir, dup.Filename))
	}
	return paths
}

func recordHistory(ctx context.Context, logger *slog.Logger, store *history.Store, result Result, runErr error) {
	if store == nil {
		return
	}
	entry := history.Run{
		ID:         result.RunID,
		StartedAt:  result.StartedAt,
		FinishedAt: result.FinishedAt,
		SourceDir:  result.SourceDir,
		OutputPath: result.OutputPath,
		Outcome:    string(result.Outcome),
		Scanned:    len(result.Files),
		Accepted:   len(result.Accepted),
		Rejected:   len(result.Rejected),
		Duplicates: len(result.Duplicates),
		FileCount:  result.Document.FileCount,
		BackupPath: result.BackupPath,
	}
	if runErr != nil {
		entry.Error = runErr.Error()
	}
	if _, err := store.Record(context.WithoutCancel(ctx), entry); err != nil {
		logging.WarnWithContext(logger, "failed to record run history", "history_record_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the state directory and history database"),
			logging.String(logging.FieldImpact, "run is missing from history"),
		)
	}
}
