package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"midicat/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	configPath string
	stateDir   string
	sourceDir  string
}

func setupCLITestEnv(t *testing.T, extra string) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	home := filepath.Join(base, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("MIDICAT_LOG_LEVEL", "")
	t.Setenv("MIDICAT_BASEDIR_LABEL", "")
	testsupport.Chdir(t, base)

	env := &cliTestEnv{
		baseDir:    base,
		configPath: filepath.Join(base, "config.toml"),
		stateDir:   filepath.Join(base, "state"),
		sourceDir:  filepath.Join(base, "songs"),
	}
	writeTestConfig(t, env.configPath, env.stateDir, extra)
	if err := os.MkdirAll(env.sourceDir, 0o755); err != nil {
		t.Fatalf("mkdir songs: %v", err)
	}
	return env
}

func writeTestConfig(t *testing.T, path, stateDir, extra string) {
	t.Helper()
	content := fmt.Sprintf("[paths]\nstate_dir = %q\nlog_dir = %q\n%s", stateDir, filepath.Join(stateDir, "logs"), extra)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliTestEnv) seed(t *testing.T) {
	t.Helper()
	base := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	testsupport.WriteFileAt(t, filepath.Join(e.sourceDir, "1-Song-Band.mid"), 100, base)
	testsupport.WriteFileAt(t, filepath.Join(e.sourceDir, "2-Song-Band.mid"), 100, base.Add(time.Minute))
	testsupport.WriteFileAt(t, filepath.Join(e.sourceDir, "4-아리랑-민요.midi"), 100, base.Add(time.Hour))
	testsupport.WriteFileAt(t, filepath.Join(e.sourceDir, "broken.mid"), 100, base)
}

func runCLI(t *testing.T, args []string, configPath, stdin string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(stdin))
	var flags []string
	if configPath != "" {
		flags = append(flags, "--config", configPath)
	}
	cmd.SetArgs(append(flags, args...))
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}
