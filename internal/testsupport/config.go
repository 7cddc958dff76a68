package testsupport

import (
	"path/filepath"
	"testing"

	"midicat/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// It defaults common fields and applies any provided options.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.LogDir = filepath.Join(base, "logs")
	cfgVal.Catalog.BasedirLabel = ""

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithHistoryDisabled turns off the run ledger.
func WithHistoryDisabled() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.History.Enabled = false
	}
}

// WithBasedirLabel fixes the basedir recorded in catalogs.
func WithBasedirLabel(label string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.BasedirLabel = label
	}
}

// WithOutputName overrides the catalog file name.
func WithOutputName(name string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Catalog.OutputName = name
	}
}

// WithTimeSource selects the timestamp used for ordering.
func WithTimeSource(src string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Scan.TimeSource = src
	}
}
