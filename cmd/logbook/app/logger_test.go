package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		env      string
		expected string
	}{
		{"default", &Config{}, "", "info"},
		{"verbose sets debug", &Config{Verbose: true}, "", "debug"},
		{"quiet sets warn", &Config{Quiet: true}, "", "warn"},
		{"explicit overrides verbose", &Config{LogLevel: "error", Verbose: true}, "", "error"},
		{"explicit overrides quiet", &Config{LogLevel: "trace", Quiet: true}, "", "trace"},
		{"verbose and quiet uses quiet", &Config{Verbose: true, Quiet: true}, "", "warn"},
		{"invalid explicit falls back", &Config{LogLevel: "loud"}, "", "info"},
		{"environment", &Config{}, "debug", "debug"},
		{"flag overrides environment", &Config{Quiet: true}, "debug", "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("LOG_LEVEL", tt.env)
			if got := determineLogLevel(tt.config); got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
		})
	}
}

// TestValidateLogLevel tests log level validation.
func TestValidateLogLevel(t *testing.T) {
	for _, level := range []string{"trace", "debug", "info", "warn", "error"} {
		if got := validateLogLevel(level); got != level {
			t.Errorf("validateLogLevel(%q) = %q", level, got)
		}
	}
	if got := validateLogLevel("verbose"); got != "info" {
		t.Errorf("validateLogLevel(verbose) = %q, want info", got)
	}
}

// TestNewLoggerEnvironmentFields tests that LOG_FIELDS reaches the built logger.
func TestNewLoggerEnvironmentFields(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("LOG_FIELDS", "deployment=staging")
	path := filepath.Join(t.TempDir(), "app.log")

	logger := NewLogger(&Config{LogFormat: "json", LogOutput: path})
	logger.Info().Msg("catalog loaded")

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	out := string(content)
	if !strings.Contains(out, `"deployment":"staging"`) {
		t.Errorf("log output missing environment field: %s", out)
	}
	if !strings.Contains(out, "catalog loaded") {
		t.Errorf("log output missing message: %s", out)
	}
}
