package logging

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/mattn/go-isatty"
	"gopkg.in/natefinch/lumberjack.v2"

	"midicat/internal/config"
)

// Options describes logger construction parameters.
type Options struct {
	Level  string
	Format string
	// Console receives human-facing output. Defaults to os.Stderr so stdout
	// stays free for catalog JSON.
	Console io.Writer
	// FilePath enables a rotating JSON log file when non-empty.
	FilePath    string
	MaxSizeMB   int
	MaxBackups  int
	MaxAgeDays  int
	Development bool
}

// New constructs a slog logger using the provided options. The returned closer
// releases the log file, if any.
func New(opts Options) (*slog.Logger, io.Closer, error) {
	level := parseLevel(opts.Level)
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	console := opts.Console
	if console == nil {
		console = os.Stderr
	}

	addSource := opts.Development || level <= slog.LevelDebug

	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "console"
	}

	var consoleHandler slog.Handler
	switch format {
	case "json":
		consoleHandler = newJSONHandler(console, levelVar, addSource)
	case "console":
		consoleHandler = newPrettyHandler(console, levelVar, addSource, shouldColorize(console))
	default:
		return nil, nil, fmt.Errorf("log format: unsupported value %q", opts.Format)
	}

	path := strings.TrimSpace(opts.FilePath)
	if path == "" {
		return slog.New(consoleHandler), nopCloser{}, nil
	}
	if err := ensureLogDir(path); err != nil {
		return nil, nil, fmt.Errorf("ensure log directory: %w", err)
	}
	file := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    opts.MaxSizeMB,
		MaxBackups: opts.MaxBackups,
		MaxAge:     opts.MaxAgeDays,
	}
	fileHandler := newJSONHandler(file, levelVar, addSource)
	return slog.New(newSinkHandler(
		logSink{name: "console", handler: consoleHandler},
		logSink{name: "file", handler: fileHandler},
	)), file, nil
}

// NewFromConfig creates a logger using application config values.
func NewFromConfig(cfg *config.Config, console io.Writer) (*slog.Logger, io.Closer, error) {
	if cfg == nil {
		return New(Options{Level: "info", Format: "console", Console: console})
	}
	return New(Options{
		Level:      cfg.Logging.Level,
		Format:     cfg.Logging.Format,
		Console:    console,
		FilePath:   cfg.LogPath(),
		MaxSizeMB:  cfg.Logging.MaxSizeMB,
		MaxBackups: cfg.Logging.MaxBackups,
		MaxAgeDays: cfg.Logging.RetentionDays,
	})
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func ensureLogDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}

func shouldColorize(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
