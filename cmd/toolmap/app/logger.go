package app

import (
	"fmt"
	"os"
	"slices"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/pkg/logging"
)

var logLevels = []string{"trace", "debug", "info", "warn", "error"}

// NewLogger builds the CLI logger from config. The level is chosen in this
// order:
//  1. --log-level, LOG_LEVEL or log_level from the config file
//  2. -q/--quiet (warn), which also wins when -v is given
//  3. -v/--verbose (debug)
//  4. info
//
// A rejected level or a -v/-q conflict is logged as a warning once the
// logger exists.
func NewLogger(config *Config) zerolog.Logger {
	level, warning := determineLogLevel(config)

	logger := logging.NewLoggerFromConfig(&logging.Config{
		Level:     level,
		Format:    config.LogFormat,
		Output:    config.LogOutput,
		NoColor:   config.NoColor || os.Getenv(logging.EnvNoColor) != "",
		AddCaller: level == "debug" || level == "trace",
	})
	if warning != "" {
		logger.Warn().Str("level", level).Msg(warning)
	}
	return logger
}

// determineLogLevel returns the level to use and, when the flags or config
// had to be overruled, a warning explaining what was ignored.
func determineLogLevel(config *Config) (string, string) {
	switch {
	case config.LogLevel != "":
		level := validateLogLevel(config.LogLevel)
		if level != config.LogLevel {
			return level, fmt.Sprintf("invalid log level %q, using %q", config.LogLevel, level)
		}
		return level, ""
	case config.Verbose && config.Quiet:
		return "warn", "both --verbose and --quiet given, using --quiet"
	case config.Verbose:
		return "debug", ""
	case config.Quiet:
		return "warn", ""
	}
	return "info", ""
}

// validateLogLevel returns level when it is one of logLevels, otherwise info.
func validateLogLevel(level string) string {
	if slices.Contains(logLevels, level) {
		return level
	}
	return "info"
}
