package publish_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofrs/flock"

	"midicat/internal/failures"
	"midicat/internal/publish"
)

func fixedNow() time.Time {
	return time.Date(2024, 3, 1, 12, 30, 45, 0, time.Local)
}

func TestWriteCreatesNewOutputWithoutPrompt(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	asked := false
	confirm := publish.ConfirmFunc(func(string) (bool, error) {
		asked = true
		return true, nil
	})

	res, err := publish.Write(context.Background(), out, []byte("{}\n"), publish.Options{Confirmer: confirm, Now: fixedNow})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if asked {
		t.Fatal("confirmer should not run when output is absent")
	}
	if res.Replaced || res.BackupPath != "" {
		t.Fatalf("unexpected result %+v", res)
	}
	got, err := os.ReadFile(out)
	if err != nil || string(got) != "{}\n" {
		t.Fatalf("unexpected output %q (%v)", got, err)
	}
}

func TestWriteBacksUpBeforeOverwrite(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	old := `{"created_date":"x","basedir":"d","file_count":7,"files":[]}`
	if err := os.WriteFile(out, []byte(old), 0o644); err != nil {
		t.Fatal(err)
	}
	var prompt string
	confirm := publish.ConfirmFunc(func(p string) (bool, error) {
		prompt = p
		return true, nil
	})

	res, err := publish.Write(context.Background(), out, []byte("new"), publish.Options{Confirmer: confirm, Now: fixedNow})
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !strings.Contains(prompt, "7 files") {
		t.Fatalf("prompt should mention prior count, got %q", prompt)
	}
	wantBackup := out + ".20240301-123045.bak"
	if res.BackupPath != wantBackup {
		t.Fatalf("backup = %q, want %q", res.BackupPath, wantBackup)
	}
	if res.PriorCount != 7 || !res.Replaced {
		t.Fatalf("unexpected result %+v", res)
	}
	backup, err := os.ReadFile(wantBackup)
	if err != nil || string(backup) != old {
		t.Fatalf("backup content %q (%v)", backup, err)
	}
	current, err := os.ReadFile(out)
	if err != nil || string(current) != "new" {
		t.Fatalf("output content %q (%v)", current, err)
	}
}

func TestWriteNumbersBackupsInSameSecond(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(out, []byte("v1"), 0o644); err != nil {
		t.Fatal(err)
	}
	opts := publish.Options{Confirmer: publish.Always(true), Now: fixedNow}
	first, err := publish.Write(context.Background(), out, []byte("v2"), opts)
	if err != nil {
		t.Fatalf("first Write: %v", err)
	}
	second, err := publish.Write(context.Background(), out, []byte("v3"), opts)
	if err != nil {
		t.Fatalf("second Write: %v", err)
	}
	if first.BackupPath == second.BackupPath {
		t.Fatalf("backups collided at %s", first.BackupPath)
	}
	if !strings.HasSuffix(second.BackupPath, ".20240301-123045-1.bak") {
		t.Fatalf("unexpected second backup %s", second.BackupPath)
	}
	if got, _ := os.ReadFile(first.BackupPath); string(got) != "v1" {
		t.Fatalf("first backup = %q", got)
	}
	if got, _ := os.ReadFile(second.BackupPath); string(got) != "v2" {
		t.Fatalf("second backup = %q", got)
	}
}

func TestWriteDeclineLeavesOutputUntouched(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(out, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}

	for name, confirmer := range map[string]publish.Confirmer{
		"no":  publish.Always(false),
		"nil": nil,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := publish.Write(context.Background(), out, []byte("replace"), publish.Options{Confirmer: confirmer, Now: fixedNow})
			if !errors.Is(err, publish.ErrDeclined) {
				t.Fatalf("expected ErrDeclined, got %v", err)
			}
			got, _ := os.ReadFile(out)
			if string(got) != "keep" {
				t.Fatalf("output modified: %q", got)
			}
		})
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "*.bak"))
	if len(matches) != 0 {
		t.Fatalf("expected no backups, found %v", matches)
	}
}

func TestWriteConfirmerError(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	if err := os.WriteFile(out, []byte("keep"), 0o644); err != nil {
		t.Fatal(err)
	}
	confirm := publish.ConfirmFunc(func(string) (bool, error) { return false, errors.New("stdin closed") })
	_, err := publish.Write(context.Background(), out, []byte("x"), publish.Options{Confirmer: confirm})
	if !errors.Is(err, failures.ErrOutputConflict) {
		t.Fatalf("expected ErrOutputConflict, got %v", err)
	}
}

func TestWriteFailsFastWhenLocked(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	holder := flock.New(out + ".lock")
	ok, err := holder.TryLock()
	if err != nil || !ok {
		t.Fatalf("hold lock: %v %v", ok, err)
	}
	t.Cleanup(func() { _ = holder.Unlock() })

	_, err = publish.Write(context.Background(), out, []byte("x"), publish.Options{Confirmer: publish.Always(true)})
	if !errors.Is(err, failures.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	if _, statErr := os.Stat(out); !os.IsNotExist(statErr) {
		t.Fatalf("output should not exist, stat err %v", statErr)
	}
}

func TestWriteRejectsDirectoryOutput(t *testing.T) {
	dir := t.TempDir()
	out := filepath.Join(dir, "catalog.json")
	if err := os.Mkdir(out, 0o755); err != nil {
		t.Fatal(err)
	}
	_, err := publish.Write(context.Background(), out, []byte("x"), publish.Options{Confirmer: publish.Always(true)})
	if !errors.Is(err, failures.ErrOutputConflict) {
		t.Fatalf("expected ErrOutputConflict, got %v", err)
	}
}

func TestWriteHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	out := filepath.Join(t.TempDir(), "catalog.json")
	if _, err := publish.Write(ctx, out, []byte("x"), publish.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
