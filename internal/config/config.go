package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains state and log directory configuration.
type Paths struct {
	StateDir string `toml:"state_dir"`
	LogDir   string `toml:"log_dir"`
}

// Scan controls which files are considered and how they are timestamped.
type Scan struct {
	Extensions []string `toml:"extensions"`
	TimeSource string   `toml:"time_source"`
}

// Catalog controls the output document.
type Catalog struct {
	OutputName   string `toml:"output_name"`
	BasedirLabel string `toml:"basedir_label"`
}

// Organize controls where rejected and duplicate files are moved.
type Organize struct {
	QuarantineDir string `toml:"quarantine_dir"`
}

// History controls the run ledger.
type History struct {
	Enabled bool `toml:"enabled"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	MaxSizeMB     int    `toml:"max_size_mb"`
	MaxBackups    int    `toml:"max_backups"`
	RetentionDays int    `toml:"retention_days"`
}

// Config encapsulates all configuration values for midicat.
type Config struct {
	Paths    Paths    `toml:"paths"`
	Scan     Scan     `toml:"scan"`
	Catalog  Catalog  `toml:"catalog"`
	Organize Organize `toml:"organize"`
	History  History  `toml:"history"`
	Logging  Logging  `toml:"logging"`
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	if err := loadDotEnv(); err != nil {
		return nil, "", false, err
	}

	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config %s: %w", resolvedPath, err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func loadDotEnv() error {
	err := godotenv.Load()
	if err == nil || errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("load .env: %w", err)
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("midicat.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the state and log directories.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.StateDir, c.Paths.LogDir} {
		if strings.TrimSpace(dir) == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// HistoryPath returns the run ledger database location.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.Paths.StateDir, "history.db")
}

// LogPath returns the rotating log file location, or "" when file logging is off.
func (c *Config) LogPath() string {
	if strings.TrimSpace(c.Paths.LogDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.LogDir, "midicat.log")
}

// OutputPath returns the catalog location for a scanned directory.
func (c *Config) OutputPath(sourceDir string) string {
	return filepath.Join(sourceDir, c.Catalog.OutputName)
}

// QuarantinePath returns the quarantine directory for a scanned directory.
func (c *Config) QuarantinePath(sourceDir string) string {
	if filepath.IsAbs(c.Organize.QuarantineDir) {
		return c.Organize.QuarantineDir
	}
	return filepath.Join(sourceDir, c.Organize.QuarantineDir)
}

// BasedirLabel returns the label recorded in the catalog for sourceDir.
func (c *Config) BasedirLabel(sourceDir string) string {
	if label := strings.TrimSpace(c.Catalog.BasedirLabel); label != "" {
		return label
	}
	return filepath.Base(filepath.Clean(sourceDir))
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
