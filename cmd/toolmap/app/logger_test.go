package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestDetermineLogLevel tests the log level precedence logic.
func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		config   *Config
		expected string
		warns    bool
	}{
		{
			name:     "default level when no flags set",
			config:   &Config{},
			expected: "info",
		},
		{
			name:     "verbose flag sets debug",
			config:   &Config{Verbose: true},
			expected: "debug",
		},
		{
			name:     "quiet flag sets warn",
			config:   &Config{Quiet: true},
			expected: "warn",
		},
		{
			name:     "quiet wins over verbose",
			config:   &Config{Verbose: true, Quiet: true},
			expected: "warn",
			warns:    true,
		},
		{
			name:     "explicit log-level overrides verbose",
			config:   &Config{LogLevel: "error", Verbose: true},
			expected: "error",
		},
		{
			name:     "explicit log-level overrides quiet",
			config:   &Config{LogLevel: "trace", Quiet: true},
			expected: "trace",
		},
		{
			name:     "invalid log-level falls back to info",
			config:   &Config{LogLevel: "loud", Verbose: true},
			expected: "info",
			warns:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, warning := determineLogLevel(tt.config)
			if got != tt.expected {
				t.Errorf("determineLogLevel() = %s, want %s", got, tt.expected)
			}
			if (warning != "") != tt.warns {
				t.Errorf("determineLogLevel() warning = %q, want warning: %v", warning, tt.warns)
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
	for _, level := range []string{"", "DEBUG", "fatal", "verbose"} {
		if got := validateLogLevel(level); got != "info" {
			t.Errorf("validateLogLevel(%q) = %q, want info", level, got)
		}
	}
}

// TestNewLogger verifies the logger level follows the config.
func TestNewLogger(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	tests := []struct {
		config *Config
		want   zerolog.Level
	}{
		{config: &Config{LogFormat: "json", LogOutput: "stderr"}, want: zerolog.InfoLevel},
		{config: &Config{Verbose: true, LogFormat: "json", LogOutput: "stderr"}, want: zerolog.DebugLevel},
		{config: &Config{LogLevel: "error", NoColor: true, LogFormat: "console", LogOutput: "stderr"}, want: zerolog.ErrorLevel},
	}

	for _, tt := range tests {
		logger := NewLogger(tt.config)
		if logger.GetLevel() != tt.want {
			t.Errorf("NewLogger() level = %v, want %v", logger.GetLevel(), tt.want)
		}
	}
}

// TestNewLoggerWarnsAboutConflicts verifies the -v/-q conflict is logged.
func TestNewLoggerWarnsAboutConflicts(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	path := filepath.Join(t.TempDir(), "cli.log")
	NewLogger(&Config{Verbose: true, Quiet: true, LogFormat: "json", LogOutput: path})

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading log: %v", err)
	}
	if !strings.Contains(string(content), "both --verbose and --quiet given") {
		t.Errorf("log output = %q, want the conflict warning", content)
	}
}
