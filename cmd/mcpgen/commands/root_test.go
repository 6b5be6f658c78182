package commands

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/mcpgen/internal/logging"
)

// resetLoggingFlags restores the logging globals after a test.
func resetLoggingFlags(t *testing.T) {
	t.Helper()
	origVerbosity, origQuiet, origFormat, origFile := verbosity, quiet, logFormat, logFile
	origDefault := slog.Default()
	t.Cleanup(func() {
		verbosity, quiet, logFormat, logFile = origVerbosity, origQuiet, origFormat, origFile
		slog.SetDefault(origDefault)
	})
}

func TestSetupLogging_VerbosityFlags(t *testing.T) {
	resetLoggingFlags(t)
	t.Setenv(debugEnv, "")

	tests := []struct {
		name      string
		verbosity int
		wantLevel slog.Level
	}{
		{"default (0)", 0, slog.LevelWarn},
		{"verbose (1)", 1, slog.LevelInfo},
		{"debug (2)", 2, slog.LevelDebug},
		{"trace (3)", 3, logging.LevelTrace},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity, quiet, logFormat, logFile = tt.verbosity, false, "text", ""
			cmd, _ := newTestCommand(t)
			if err := setupLogging(cmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}

			logger := logging.FromContext(cmd.Context())
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > logging.LevelTrace && logger.Enabled(t.Context(), tt.wantLevel-4) {
				t.Errorf("expected level %v to be disabled", tt.wantLevel-4)
			}
			if slog.Default() != logger {
				t.Error("setupLogging should install the logger as slog default")
			}
		})
	}
}

func TestSetupLogging_EnvVar(t *testing.T) {
	resetLoggingFlags(t)

	tests := []struct {
		name      string
		envVal    string
		wantLevel slog.Level
	}{
		{"MCPGEN_DEBUG=1", "1", slog.LevelDebug},
		{"MCPGEN_DEBUG=true", "true", slog.LevelDebug},
		{"MCPGEN_DEBUG=2", "2", logging.LevelTrace},
		{"MCPGEN_DEBUG=0", "0", slog.LevelWarn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity, quiet, logFormat, logFile = 0, false, "text", ""
			t.Setenv(debugEnv, tt.envVal)

			cmd, _ := newTestCommand(t)
			if err := setupLogging(cmd); err != nil {
				t.Fatalf("setupLogging failed: %v", err)
			}
			logger := logging.FromContext(cmd.Context())
			if !logger.Enabled(t.Context(), tt.wantLevel) {
				t.Errorf("expected level %v to be enabled", tt.wantLevel)
			}
			if tt.wantLevel == slog.LevelDebug && logger.Enabled(t.Context(), logging.LevelTrace) {
				t.Error("expected trace to be disabled")
			}
		})
	}
}

func TestSetupLogging_Errors(t *testing.T) {
	resetLoggingFlags(t)

	tests := []struct {
		name      string
		verbosity int
		quiet     bool
		format    string
	}{
		{"quiet and verbose", 1, true, "text"},
		{"unknown format", 0, false, "xml"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			verbosity, quiet, logFormat, logFile = tt.verbosity, tt.quiet, tt.format, ""
			cmd, _ := newTestCommand(t)
			if err := setupLogging(cmd); err == nil {
				t.Error("expected error")
			}
		})
	}
}

func TestSetupLogging_LogFile(t *testing.T) {
	resetLoggingFlags(t)
	t.Setenv(debugEnv, "")

	path := filepath.Join(t.TempDir(), "mcpgen.log")
	verbosity, quiet, logFormat, logFile = 0, false, "text", path

	cmd, _ := newTestCommand(t)
	var stderr bytes.Buffer
	cmd.SetErr(&stderr)
	if err := setupLogging(cmd); err != nil {
		t.Fatalf("setupLogging failed: %v", err)
	}
	logging.FromContext(cmd.Context()).Warn("placeholder value", "server", "github")

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	var record map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(data), &record); err != nil {
		t.Fatalf("log file is not JSON: %v: %q", err, data)
	}
	if record["server"] != "github" {
		t.Errorf("log record server = %v, want github", record["server"])
	}
	if !strings.Contains(stderr.String(), "placeholder value") {
		t.Errorf("stderr missing record: %q", stderr.String())
	}
}

func TestLoadConfig_FlagOverrides(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("MCPGEN_CONFIG_DIR", dir)

	origCfg, origConfigFile, origRegistry, origEnvFile := cfg, configFile, registryFlag, envFileFlag
	defer func() {
		cfg, configFile, registryFlag, envFileFlag = origCfg, origConfigFile, origRegistry, origEnvFile
	}()

	configYAML := "registry: from-config.yaml\nenv_file: from-config.env\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(configYAML), 0o644); err != nil {
		t.Fatal(err)
	}

	configFile, registryFlag, envFileFlag = "", "", "flag.env"
	cmd, _ := newTestCommand(t)
	cmd.Use = "preview"
	if err := loadConfig(cmd); err != nil {
		t.Fatalf("loadConfig() error = %v", err)
	}
	if cfg.Registry != "from-config.yaml" {
		t.Errorf("Registry = %q, want from-config.yaml", cfg.Registry)
	}
	if cfg.EnvFile != "flag.env" {
		t.Errorf("EnvFile = %q, want flag.env", cfg.EnvFile)
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	want := []string{"backup", "env", "list", "preview", "show", "validate", "version", "write"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("rootCmd missing subcommand %q", name)
		}
	}
}
