package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateScan(); err != nil {
		return err
	}
	if err := c.validateCatalog(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateScan() error {
	switch c.Scan.TimeSource {
	case "modified", "created":
	default:
		return fmt.Errorf("scan.time_source must be \"modified\" or \"created\", got %q", c.Scan.TimeSource)
	}
	if len(c.Scan.Extensions) == 0 {
		return errors.New("scan.extensions must include at least one extension")
	}
	return nil
}

func (c *Config) validateCatalog() error {
	name := c.Catalog.OutputName
	if name != filepath.Base(name) || name == "." || name == ".." {
		return fmt.Errorf("catalog.output_name must be a bare file name, got %q", name)
	}
	for _, ext := range c.Scan.Extensions {
		if strings.HasSuffix(name, ext) {
			return fmt.Errorf("catalog.output_name %q would be picked up by the scan (extension %s)", name, ext)
		}
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error; got %q", c.Logging.Level)
	}
	return nil
}
