// Package app provides the application context and dependency management
// for the toolmap CLI. It centralizes configuration, logging and the
// lifecycle of the toolmap client shared by all commands.
package app

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/internal/appcontext"
	"github.com/agentstation/toolmap/internal/catalogs"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/internal/overrides"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/sources"
)

// Ensure App implements appcontext.Interface at compile time.
var _ appcontext.Interface = (*App)(nil)

// App represents the toolmap application with all its dependencies.
type App struct {
	// Version information
	version string
	commit  string
	date    string
	builtBy string

	config *Config
	logger *zerolog.Logger

	// Client instance (lazy-initialized, singleton)
	mu     sync.RWMutex
	client toolmap.Client
}

// New creates a new App instance with the given version information.
// The app is initialized with configuration from the environment and
// config file, which functional options may replace.
func New(version, commit, date, builtBy string, opts ...Option) (*App, error) {
	app := &App{
		version: version,
		commit:  commit,
		date:    date,
		builtBy: builtBy,
	}

	config, err := LoadConfig()
	if err != nil {
		return nil, errors.WrapResource("load", "config", "", err)
	}
	app.config = config

	logger := NewLogger(config)
	app.logger = &logger

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	return app, nil
}

// Version returns the version information.
func (a *App) Version() string {
	return a.version
}

// Commit returns the git commit hash.
func (a *App) Commit() string {
	return a.commit
}

// Date returns the build date.
func (a *App) Date() string {
	return a.date
}

// BuiltBy returns the build system identifier.
func (a *App) BuiltBy() string {
	return a.builtBy
}

// Config returns the application configuration.
func (a *App) Config() *Config {
	return a.config
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return a.logger
}

// OutputFormat returns the configured format, auto-detected from the
// terminal when unset.
func (a *App) OutputFormat() string {
	return string(output.DetectFormat(a.config.Format))
}

// OverridesPath returns the user overrides file path.
func (a *App) OverridesPath() string {
	return a.config.OverridesPath
}

// ConnectKeys returns the servers the watch command connects to by default.
func (a *App) ConnectKeys() []string {
	return append([]string(nil), a.config.Connect...)
}

// AutoUpdateInterval returns the configured refresh interval.
func (a *App) AutoUpdateInterval() time.Duration {
	return a.config.AutoUpdateInterval
}

// Client returns the toolmap client, creating it lazily if needed.
// This is thread-safe and ensures only one instance is created.
func (a *App) Client() (toolmap.Client, error) {
	a.mu.RLock()
	if a.client != nil {
		c := a.client
		a.mu.RUnlock()
		return c, nil
	}
	a.mu.RUnlock()

	a.mu.Lock()
	defer a.mu.Unlock()

	// Double-check after acquiring write lock
	if a.client != nil {
		return a.client, nil
	}

	c, err := toolmap.New(a.buildClientOptions()...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	a.client = c
	return c, nil
}

// ClientWithOptions returns a new client built from the app configuration
// with opts applied last. The caller owns the client and must close it.
func (a *App) ClientWithOptions(opts ...toolmap.Option) (toolmap.Client, error) {
	all := append(a.buildClientOptions(), opts...)
	c, err := toolmap.New(all...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "with custom options", err)
	}
	return c, nil
}

// Shutdown closes the shared client, stopping any background refresh.
func (a *App) Shutdown(ctx context.Context) error {
	a.mu.Lock()
	c := a.client
	a.client = nil
	a.mu.Unlock()

	if c == nil {
		return nil
	}

	done := make(chan error, 1)
	go func() { done <- c.Close() }()

	select {
	case err := <-done:
		if err != nil {
			a.logger.Error().Err(err).Msg("Failed to close client during shutdown")
		}
		return err
	case <-ctx.Done():
		return &errors.TimeoutError{Operation: "shutdown", Message: ctx.Err().Error()}
	}
}

// buildClientOptions constructs client options from the app configuration.
func (a *App) buildClientOptions() []toolmap.Option {
	opts := []toolmap.Option{
		toolmap.WithLogger(a.logger),
		toolmap.WithCatalogSource(catalogs.For(a.config.CatalogPath)),
		toolmap.WithActiveSource(sources.StaticActive(a.config.ActiveServers...)),
		toolmap.WithAutoUpdateInterval(a.config.AutoUpdateInterval),
		toolmap.WithLoadTimeout(a.config.LoadTimeout),
	}

	if a.config.OverridesPath != "" {
		opts = append(opts, toolmap.WithOverrideSource(overrides.New(a.config.OverridesPath)))
	}

	return opts
}

// Option is a functional option for configuring the App.
type Option func(*App) error

// WithConfig sets a custom configuration.
func WithConfig(config *Config) Option {
	return func(a *App) error {
		a.config = config
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *zerolog.Logger) Option {
	return func(a *App) error {
		a.logger = logger
		return nil
	}
}

// WithClient sets a custom client instance (useful for testing).
func WithClient(c toolmap.Client) Option {
	return func(a *App) error {
		a.client = c
		return nil
	}
}
