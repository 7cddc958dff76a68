package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	defaultConfigPath       = "~/.config/midicat/config.toml"
	defaultOutputName       = "catalog.json"
	defaultQuarantineDir    = "_quarantine"
	defaultTimeSource       = "modified"
	defaultLogFormat        = "console"
	defaultLogLevel         = "info"
	defaultLogMaxSizeMB     = 10
	defaultLogMaxBackups    = 3
	defaultLogRetentionDays = 30
	defaultHistoryEnabled   = true
)

var defaultExtensions = []string{".mid", ".midi"}

// Default returns a Config populated with repository defaults.
func Default() Config {
	stateDir := defaultStateDir()
	return Config{
		Paths: Paths{
			StateDir: stateDir,
			LogDir:   filepath.Join(stateDir, "logs"),
		},
		Scan: Scan{
			Extensions: append([]string(nil), defaultExtensions...),
			TimeSource: defaultTimeSource,
		},
		Catalog: Catalog{
			OutputName: defaultOutputName,
		},
		Organize: Organize{
			QuarantineDir: defaultQuarantineDir,
		},
		History: History{
			Enabled: defaultHistoryEnabled,
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			MaxSizeMB:     defaultLogMaxSizeMB,
			MaxBackups:    defaultLogMaxBackups,
			RetentionDays: defaultLogRetentionDays,
		},
	}
}

func defaultStateDir() string {
	if base, ok := os.LookupEnv("XDG_DATA_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "midicat")
	}
	return "~/.local/share/midicat"
}
