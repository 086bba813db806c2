// Package logging provides structured logging for toolmap using zerolog.
//
// A process-wide default logger is configured from the LOG_* environment at
// start up and may be replaced with Configure. Components receive a logger
// through options or through the context:
//
//	ctx = logging.WithLogger(ctx, logger)
//	ctx = logging.WithSource(ctx, "overrides")
//	logging.FromContext(ctx).Warn().Err(err).Msg("Load failed")
package logging

import (
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// defaultLogger backs Default. Its address is stable for the life of the
// process so callers may hold the pointer.
var defaultLogger zerolog.Logger

func init() {
	defaultLogger = NewLoggerFromConfig(configFromEnv())
	log.Logger = defaultLogger
}

// Default returns the default global logger.
func Default() *zerolog.Logger {
	return &defaultLogger
}

// SetDefault replaces the default logger and zerolog's global log.Logger.
func SetDefault(logger zerolog.Logger) {
	defaultLogger = logger
	log.Logger = logger
}

// New creates a timestamped logger on w at the current global level.
func New(w io.Writer) zerolog.Logger {
	return zerolog.New(w).
		Level(zerolog.GlobalLevel()).
		With().
		Timestamp().
		Logger()
}

// NewJSON is New with a stderr fallback for a nil writer.
func NewJSON(w io.Writer) zerolog.Logger {
	if w == nil {
		w = os.Stderr
	}
	return New(w)
}

// With creates a child context of the default logger.
func With() zerolog.Context {
	return defaultLogger.With()
}

// Debug starts a debug event on the default logger.
func Debug() *zerolog.Event {
	return defaultLogger.Debug()
}

// Info starts an info event on the default logger.
func Info() *zerolog.Event {
	return defaultLogger.Info()
}

// Warn starts a warn event on the default logger.
func Warn() *zerolog.Event {
	return defaultLogger.Warn()
}

// Error starts an error event on the default logger.
func Error() *zerolog.Event {
	return defaultLogger.Error()
}

// WithLevel starts an event at level on the default logger.
func WithLevel(level zerolog.Level) *zerolog.Event {
	return defaultLogger.WithLevel(level)
}

// Err starts an error event for err, or an info event when err is nil.
func Err(err error) *zerolog.Event {
	return defaultLogger.Err(err)
}
