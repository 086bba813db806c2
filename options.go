package toolmap

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/internal/catalogs/embedded"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/sources"
)

// options holds the configuration for a Client.
type options struct {
	catalog   sources.CatalogSource
	overrides sources.OverrideSource
	active    sources.ActiveSource

	autoUpdatesEnabled bool
	autoUpdateInterval time.Duration
	loadTimeout        time.Duration
	initialRefresh     bool

	logger *zerolog.Logger
}

// Option is a function that configures a Client.
type Option func(*options) error

// defaults returns options with default values: the embedded catalog, no
// overrides, nothing active, auto updates off.
func defaults() *options {
	return &options{
		catalog:            embedded.NewCatalog(),
		overrides:          sources.StaticOverrides(),
		active:             sources.StaticActive(),
		autoUpdatesEnabled: false,
		autoUpdateInterval: constants.DefaultAutoUpdateInterval,
		loadTimeout:        constants.LoadTimeout,
		initialRefresh:     true,
	}
}

func (o *options) apply(opts ...Option) (*options, error) {
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// WithCatalogSource sets where the builtin catalog comes from.
func WithCatalogSource(src sources.CatalogSource) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "catalog", Message: "cannot be nil"}
		}
		o.catalog = src
		return nil
	}
}

// WithOverrideSource sets where user configured servers come from.
func WithOverrideSource(src sources.OverrideSource) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "overrides", Message: "cannot be nil"}
		}
		o.overrides = src
		return nil
	}
}

// WithActiveSource sets where the active server keys come from.
func WithActiveSource(src sources.ActiveSource) Option {
	return func(o *options) error {
		if src == nil {
			return &errors.ValidationError{Field: "active", Message: "cannot be nil"}
		}
		o.active = src
		return nil
	}
}

// WithAutoUpdates configures whether automatic refreshes start with the client.
func WithAutoUpdates(enabled bool) Option {
	return func(o *options) error {
		o.autoUpdatesEnabled = enabled
		return nil
	}
}

// WithAutoUpdateInterval configures how often to automatically refresh.
func WithAutoUpdateInterval(interval time.Duration) Option {
	return func(o *options) error {
		o.autoUpdateInterval = interval
		return nil
	}
}

// WithLoadTimeout bounds each refresh. Zero means no bound beyond the
// caller's context.
func WithLoadTimeout(timeout time.Duration) Option {
	return func(o *options) error {
		if timeout < 0 {
			return &errors.ValidationError{Field: "loadTimeout", Value: timeout, Message: "cannot be negative"}
		}
		o.loadTimeout = timeout
		return nil
	}
}

// WithInitialRefresh configures whether New refreshes before returning.
func WithInitialRefresh(enabled bool) Option {
	return func(o *options) error {
		o.initialRefresh = enabled
		return nil
	}
}

// WithLogger sets the logger attached to every refresh context.
func WithLogger(logger *zerolog.Logger) Option {
	return func(o *options) error {
		o.logger = logger
		return nil
	}
}
