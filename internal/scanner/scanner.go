package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"
)

// TimeSource selects which filesystem timestamp orders the catalog.
type TimeSource string

const (
	TimeModified TimeSource = "modified"
	TimeCreated  TimeSource = "created"
)

// ParseTimeSource validates a configured time source.
func ParseTimeSource(value string) (TimeSource, error) {
	switch src := TimeSource(strings.ToLower(strings.TrimSpace(value))); src {
	case "", TimeModified:
		return TimeModified, nil
	case TimeCreated:
		return TimeCreated, nil
	default:
		return "", fmt.Errorf("unsupported time source %q (use %q or %q)", value, TimeModified, TimeCreated)
	}
}

// File describes one candidate file found during a scan.
type File struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
}

// Skip records a candidate that matched the extension filter but could not be
// inspected, for example because it vanished after the directory was read or
// is a dangling symlink.
type Skip struct {
	Name string
	Err  error
}

// List returns regular files directly under dir whose names end with one of
// exts (case-sensitive). Symlinks are followed and kept when their target is a
// regular file. Results are sorted by name so scan order is stable across
// filesystems. Per-entry stat failures do not fail the listing; they come back
// as skips.
func List(dir string, exts []string, src TimeSource) ([]File, []Skip, error) {
	dir = filepath.Clean(dir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, nil, fmt.Errorf("read directory %q: %w", dir, err)
	}

	files := make([]File, 0, len(entries))
	var skipped []Skip
	for _, entry := range entries {
		if entry.IsDir() || !hasExtension(entry.Name(), exts) {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		info, err := entryInfo(path, entry)
		if err != nil {
			skipped = append(skipped, Skip{Name: entry.Name(), Err: err})
			continue
		}
		if !info.Mode().IsRegular() {
			continue
		}
		files = append(files, File{
			Path:    path,
			Name:    entry.Name(),
			Size:    info.Size(),
			ModTime: resolveTime(path, info, src),
		})
	}

	sort.SliceStable(files, func(i, j int) bool { return files[i].Name < files[j].Name })
	return files, skipped, nil
}

func entryInfo(path string, entry fs.DirEntry) (fs.FileInfo, error) {
	if entry.Type()&fs.ModeSymlink != 0 {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("follow symlink: %w", err)
		}
		return info, nil
	}
	info, err := entry.Info()
	if err != nil {
		return nil, fmt.Errorf("stat: %w", err)
	}
	return info, nil
}

func hasExtension(name string, exts []string) bool {
	for _, ext := range exts {
		if ext != "" && strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return true
		}
	}
	return false
}

func resolveTime(path string, info os.FileInfo, src TimeSource) time.Time {
	if src == TimeCreated {
		if born, ok := birthTime(path); ok {
			return born
		}
	}
	if mod := info.ModTime(); !mod.IsZero() {
		return mod
	}
	return time.Now()
}
