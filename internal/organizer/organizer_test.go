package organizer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"syscall"
	"testing"

	"midicat/internal/failures"
	"midicat/internal/organizer"
	"midicat/internal/testsupport"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestQuarantineMovesFiles(t *testing.T) {
	src := t.TempDir()
	qdir := filepath.Join(src, "_quarantine")
	a := filepath.Join(src, "bad name.mid")
	b := filepath.Join(src, "1-Song-Band.midi")
	testsupport.WriteFile(t, a, 3)
	testsupport.WriteFile(t, b, 5)

	org := organizer.New(qdir, nil)
	moves, err := org.Quarantine(context.Background(), []string{a, b})
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if len(moves) != 2 {
		t.Fatalf("expected 2 moves, got %d", len(moves))
	}
	for _, mv := range moves {
		if _, err := os.Stat(mv.Source); !os.IsNotExist(err) {
			t.Fatalf("source %s still present", mv.Source)
		}
		if filepath.Dir(mv.Target) != qdir {
			t.Fatalf("target %s outside quarantine", mv.Target)
		}
	}
	if moves[0].Target != filepath.Join(qdir, "bad name.mid") {
		t.Fatalf("unexpected target %s", moves[0].Target)
	}
}

func TestQuarantineNeverOverwrites(t *testing.T) {
	src := t.TempDir()
	qdir := filepath.Join(src, "q")
	if err := os.MkdirAll(qdir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(qdir, "2-A-B.mid"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(qdir, "2-A-B-1.mid"), []byte("older"), 0o644); err != nil {
		t.Fatal(err)
	}
	source := filepath.Join(src, "2-A-B.mid")
	if err := os.WriteFile(source, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}

	moves, err := organizer.New(qdir, nil).Quarantine(context.Background(), []string{source})
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	want := filepath.Join(qdir, "2-A-B-2.mid")
	if moves[0].Target != want {
		t.Fatalf("target = %s, want %s", moves[0].Target, want)
	}
	if readFile(t, filepath.Join(qdir, "2-A-B.mid")) != "old" {
		t.Fatal("existing quarantine file was overwritten")
	}
	if readFile(t, want) != "new" {
		t.Fatal("moved content mismatch")
	}
}

func TestQuarantineCrossDeviceFallsBackToCopy(t *testing.T) {
	restore := organizer.SetRenameForTests(func(oldpath, newpath string) error {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: syscall.EXDEV}
	})
	t.Cleanup(restore)

	src := t.TempDir()
	source := filepath.Join(src, "x.mid")
	if err := os.WriteFile(source, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	qdir := filepath.Join(t.TempDir(), "q")

	moves, err := organizer.New(qdir, nil).Quarantine(context.Background(), []string{source})
	if err != nil {
		t.Fatalf("Quarantine: %v", err)
	}
	if readFile(t, moves[0].Target) != "payload" {
		t.Fatal("copied content mismatch")
	}
	if _, err := os.Stat(source); !os.IsNotExist(err) {
		t.Fatalf("source should be removed after copy, stat err %v", err)
	}
}

func TestQuarantineReportsMoveFailure(t *testing.T) {
	restore := organizer.SetRenameForTests(func(string, string) error {
		return errors.New("permission denied")
	})
	t.Cleanup(restore)

	src := t.TempDir()
	source := filepath.Join(src, "x.mid")
	testsupport.WriteFile(t, source, 1)

	moves, err := organizer.New(filepath.Join(src, "q"), nil).Quarantine(context.Background(), []string{source})
	if !errors.Is(err, failures.ErrIO) {
		t.Fatalf("expected ErrIO, got %v", err)
	}
	if len(moves) != 0 {
		t.Fatalf("expected no moves, got %v", moves)
	}
}

func TestQuarantineEmptyIsNoop(t *testing.T) {
	qdir := filepath.Join(t.TempDir(), "q")
	moves, err := organizer.New(qdir, nil).Quarantine(context.Background(), nil)
	if err != nil || moves != nil {
		t.Fatalf("unexpected result %v %v", moves, err)
	}
	if _, err := os.Stat(qdir); !os.IsNotExist(err) {
		t.Fatal("quarantine directory should not be created for an empty move set")
	}
}
