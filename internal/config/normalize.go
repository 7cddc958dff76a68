package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	c.normalizeScan()
	c.normalizeCatalog()
	c.normalizeOrganize()
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir()
	}
	if c.Paths.StateDir, err = expandPath(c.Paths.StateDir); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeScan() {
	exts := make([]string, 0, len(c.Scan.Extensions))
	seen := make(map[string]struct{}, len(c.Scan.Extensions))
	for _, ext := range c.Scan.Extensions {
		ext = strings.TrimSpace(ext)
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		if _, exists := seen[ext]; exists {
			continue
		}
		seen[ext] = struct{}{}
		exts = append(exts, ext)
	}
	if len(exts) == 0 {
		exts = append(exts, defaultExtensions...)
	}
	c.Scan.Extensions = exts

	c.Scan.TimeSource = strings.ToLower(strings.TrimSpace(c.Scan.TimeSource))
	if c.Scan.TimeSource == "" {
		c.Scan.TimeSource = defaultTimeSource
	}
}

func (c *Config) normalizeCatalog() {
	c.Catalog.OutputName = strings.TrimSpace(c.Catalog.OutputName)
	if c.Catalog.OutputName == "" {
		c.Catalog.OutputName = defaultOutputName
	}
	c.Catalog.BasedirLabel = strings.TrimSpace(c.Catalog.BasedirLabel)
	if c.Catalog.BasedirLabel == "" {
		if value, ok := os.LookupEnv("MIDICAT_BASEDIR_LABEL"); ok {
			c.Catalog.BasedirLabel = strings.TrimSpace(value)
		}
	}
}

func (c *Config) normalizeOrganize() {
	dir := strings.TrimSpace(c.Organize.QuarantineDir)
	if dir == "" {
		dir = defaultQuarantineDir
	}
	if strings.HasPrefix(dir, "~") {
		if expanded, err := expandPath(dir); err == nil {
			dir = expanded
		}
	}
	c.Organize.QuarantineDir = filepath.Clean(dir)
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if value, ok := os.LookupEnv("MIDICAT_LOG_LEVEL"); ok && strings.TrimSpace(value) != "" {
		c.Logging.Level = strings.ToLower(strings.TrimSpace(value))
	}
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.MaxSizeMB <= 0 {
		c.Logging.MaxSizeMB = defaultLogMaxSizeMB
	}
	if c.Logging.MaxBackups < 0 {
		c.Logging.MaxBackups = 0
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
