package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/pkg/constants"
)

// Environment variables read by ConfigureFromEnv and the default logger.
const (
	EnvLevel      = "LOG_LEVEL"
	EnvFormat     = "LOG_FORMAT"
	EnvOutput     = "LOG_OUTPUT"
	EnvTimeFormat = "LOG_TIME_FORMAT"
	EnvCaller     = "LOG_CALLER"
	EnvFields     = "LOG_FIELDS"
	EnvNoColor    = "NO_COLOR"
	EnvDebug      = "DEBUG"
)

// Config holds logger configuration options
type Config struct {
	// Level is the minimum log level (trace, debug, info, warn, error, off)
	Level string

	// Format is json, console, or auto (console on a terminal)
	Format string

	// Output is stderr, stdout, discard, or a file path to append to
	Output string

	// TimeFormat for console timestamps (kitchen, rfc3339, unix, or a Go layout)
	TimeFormat string

	NoColor   bool
	AddCaller bool

	// Fields are attached to every entry
	Fields map[string]any
}

// DefaultConfig returns the configuration used when nothing is set.
func DefaultConfig() *Config {
	return &Config{
		Level:      "info",
		Format:     "auto",
		Output:     "stderr",
		TimeFormat: "kitchen",
		NoColor:    os.Getenv(EnvNoColor) != "",
		Fields:     map[string]any{},
	}
}

// configFromEnv overlays the LOG_* environment on DefaultConfig.
func configFromEnv() *Config {
	cfg := DefaultConfig()
	cfg.Level = envOr(EnvLevel, cfg.Level)
	if os.Getenv(EnvLevel) == "" && os.Getenv(EnvDebug) != "" {
		cfg.Level = "debug"
	}
	cfg.Format = envOr(EnvFormat, cfg.Format)
	cfg.Output = envOr(EnvOutput, cfg.Output)
	cfg.TimeFormat = envOr(EnvTimeFormat, cfg.TimeFormat)
	cfg.AddCaller = os.Getenv(EnvCaller) == "true"
	cfg.Fields = parseFields(os.Getenv(EnvFields))
	return cfg
}

// NewLoggerFromConfig builds a logger and sets the zerolog global level to
// match. Debug and trace levels always record the caller.
func NewLoggerFromConfig(cfg *Config) zerolog.Logger {
	if cfg == nil {
		cfg = DefaultConfig()
	}

	level := parseLevel(cfg.Level)
	zerolog.SetGlobalLevel(level)

	lc := zerolog.New(writerFor(cfg)).Level(level).With().Timestamp()
	if cfg.AddCaller || level <= zerolog.DebugLevel {
		lc = lc.Caller()
	}
	for k, v := range cfg.Fields {
		lc = addField(lc, k, v)
	}
	return lc.Logger()
}

// Configure replaces the default logger.
func Configure(cfg *Config) {
	SetDefault(NewLoggerFromConfig(cfg))
}

// ConfigureFromEnv replaces the default logger using LOG_LEVEL, LOG_FORMAT,
// LOG_OUTPUT, LOG_TIME_FORMAT, LOG_CALLER, LOG_FIELDS and NO_COLOR.
func ConfigureFromEnv() {
	Configure(configFromEnv())
}

func writerFor(cfg *Config) io.Writer {
	out := openOutput(cfg.Output)

	format := strings.ToLower(cfg.Format)
	if format == "auto" || format == "" {
		format = "json"
		if f, ok := out.(*os.File); ok && isTerminal(f) {
			format = "console"
		}
	}

	if format == "console" || format == "pretty" {
		return zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: parseTimeFormat(cfg.TimeFormat),
			NoColor:    cfg.NoColor,
		}
	}
	return out
}

// openOutput resolves an output name. A file that cannot be opened falls
// back to stderr.
func openOutput(output string) io.Writer {
	switch strings.ToLower(output) {
	case "", "stderr":
		return os.Stderr
	case "stdout":
		return os.Stdout
	case "discard", "none":
		return io.Discard
	}
	file, err := os.OpenFile(output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, constants.FilePermissions)
	if err != nil {
		return os.Stderr
	}
	return file
}

func isTerminal(f *os.File) bool {
	fd := f.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func parseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "warning":
		return zerolog.WarnLevel
	case "off", "none", "disabled":
		return zerolog.Disabled
	}
	l, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || l == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return l
}

func parseTimeFormat(format string) string {
	switch strings.ToLower(format) {
	case "", "kitchen":
		return time.Kitchen
	case "rfc3339":
		return time.RFC3339
	case "rfc3339nano":
		return time.RFC3339Nano
	case "unix", "epoch":
		return ""
	}
	if strings.Contains(format, "2006") || strings.Contains(format, "15:04") {
		return format
	}
	return time.Kitchen
}

// parseFields reads "k1=v1, k2=v2". Malformed pairs are skipped.
func parseFields(fields string) map[string]any {
	result := map[string]any{}
	for _, pair := range strings.Split(fields, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		if k = strings.TrimSpace(k); k != "" {
			result[k] = strings.TrimSpace(v)
		}
	}
	return result
}

// addField adds value under key with the narrowest zerolog encoder. Errors
// under "error" or "err" use zerolog's error field.
func addField(ctx zerolog.Context, key string, value any) zerolog.Context {
	switch v := value.(type) {
	case string:
		return ctx.Str(key, v)
	case int:
		return ctx.Int(key, v)
	case int64:
		return ctx.Int64(key, v)
	case uint64:
		return ctx.Uint64(key, v)
	case float64:
		return ctx.Float64(key, v)
	case bool:
		return ctx.Bool(key, v)
	case time.Duration:
		return ctx.Dur(key, v)
	case time.Time:
		return ctx.Time(key, v)
	case []string:
		return ctx.Strs(key, v)
	case error:
		if key == "error" || key == "err" {
			return ctx.Err(v)
		}
		return ctx.Str(key, v.Error())
	default:
		return ctx.Interface(key, v)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
