// Package appcontext provides the shared application context interface
// used by all commands. This eliminates interface duplication across
// command packages and provides a single source of truth for app dependencies.
package appcontext

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap"
)

// Interface defines the application context interface that commands need.
// The App struct from cmd/toolmap/app implements this interface,
// providing dependency injection for commands while maintaining testability.
//
// Commands should accept this interface rather than the concrete App type,
// allowing for easier testing with mock implementations.
type Interface interface {
	// Client returns the default toolmap client, creating it lazily if needed.
	// The first call performs the initial refresh.
	Client() (toolmap.Client, error)

	// ClientWithOptions creates a new client from the app configuration
	// with extra options applied last. The caller owns it and must Close it.
	ClientWithOptions(...toolmap.Option) (toolmap.Client, error)

	// Logger returns the configured logger instance.
	// Commands should use this for all logging operations.
	Logger() *zerolog.Logger

	// OutputFormat returns the configured output format (json, yaml, table, etc).
	OutputFormat() string

	// OverridesPath returns the user overrides file path.
	OverridesPath() string

	// ConnectKeys returns the servers to connect to when watching.
	ConnectKeys() []string

	// AutoUpdateInterval returns the configured refresh interval.
	AutoUpdateInterval() time.Duration

	// Version returns the application version string.
	Version() string

	// Commit returns the git commit hash.
	Commit() string

	// Date returns the build date.
	Date() string

	// BuiltBy returns the build system identifier.
	BuiltBy() string
}
