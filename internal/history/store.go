package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// Run summarizes one catalog invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	SourceDir  string
	OutputPath string
	Outcome    string
	Scanned    int
	Accepted   int
	Rejected   int
	Duplicates int
	FileCount  int
	BackupPath string
	Error      string
}

// Duration returns how long the run took.
func (r Run) Duration() time.Duration {
	if r.FinishedAt.Before(r.StartedAt) {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}

// Store manages the run ledger backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// NewRunID returns a fresh run identifier.
func NewRunID() string {
	return uuid.NewString()
}

// Open initializes or connects to the ledger at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record inserts run, assigning an ID when it has none. It returns the stored ID.
func (s *Store) Record(ctx context.Context, run Run) (string, error) {
	if run.ID == "" {
		run.ID = NewRunID()
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = run.FinishedAt
	}
	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO runs (
            id, started_at, finished_at, source_dir, output_path, outcome,
            scanned, accepted, rejected, duplicates, file_count, backup_path, error_message
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		formatTime(run.StartedAt),
		formatTime(run.FinishedAt),
		run.SourceDir,
		nullableString(run.OutputPath),
		run.Outcome,
		run.Scanned,
		run.Accepted,
		run.Rejected,
		run.Duplicates,
		run.FileCount,
		nullableString(run.BackupPath),
		nullableString(run.Error),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return run.ID, nil
}

// List returns the most recent runs, newest first. A limit <= 0 returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT id, started_at, finished_at, source_dir, output_path, outcome,
            scanned, accepted, rejected, duplicates, file_count, backup_path, error_message
        FROM runs ORDER BY started_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Count returns the number of recorded runs.
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(1) FROM runs").Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                      Run
		started, finished        string
		output, backup, errorMsg sql.NullString
	)
	if err := row.Scan(
		&run.ID, &started, &finished, &run.SourceDir, &output, &run.Outcome,
		&run.Scanned, &run.Accepted, &run.Rejected, &run.Duplicates, &run.FileCount,
		&backup, &errorMsg,
	); err != nil {
		return Run{}, fmt.Errorf("scan run: %w", err)
	}
	var err error
	if run.StartedAt, err = parseTime(started); err != nil {
		return Run{}, err
	}
	if run.FinishedAt, err = parseTime(finished); err != nil {
		return Run{}, err
	}
	run.OutputPath = output.String
	run.BackupPath = backup.String
	run.Error = errorMsg.String
	return run, nil
}

// timeLayout is fixed width so stored timestamps sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse timestamp %q: %w", value, err)
	}
	return t, nil
}

func nullableString(value string) any {
	if value == "" {
		return nil
	}
	return value
}
