package appcontext

import (
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/pkg/constants"
)

// Mock provides a mock implementation of Interface for testing.
// Each method can be customized by setting the corresponding function field.
// If a function field is nil, the method returns a default/zero value.
type Mock struct {
	ClientFunc             func() (toolmap.Client, error)
	ClientWithOptionsFunc  func(...toolmap.Option) (toolmap.Client, error)
	LoggerFunc             func() *zerolog.Logger
	OutputFormatFunc       func() string
	OverridesPathFunc      func() string
	ConnectKeysFunc        func() []string
	AutoUpdateIntervalFunc func() time.Duration
	VersionFunc            func() string
	CommitFunc             func() string
	DateFunc               func() string
	BuiltByFunc            func() string
}

// Client returns a client using the mock function or nil.
func (m *Mock) Client() (toolmap.Client, error) {
	if m.ClientFunc != nil {
		return m.ClientFunc()
	}
	return nil, nil
}

// ClientWithOptions returns a client using the mock function or nil.
func (m *Mock) ClientWithOptions(opts ...toolmap.Option) (toolmap.Client, error) {
	if m.ClientWithOptionsFunc != nil {
		return m.ClientWithOptionsFunc(opts...)
	}
	return nil, nil
}

// Logger returns a logger using the mock function or a no-op logger.
func (m *Mock) Logger() *zerolog.Logger {
	if m.LoggerFunc != nil {
		return m.LoggerFunc()
	}
	logger := zerolog.Nop()
	return &logger
}

// OutputFormat returns the format using the mock function or "table".
func (m *Mock) OutputFormat() string {
	if m.OutputFormatFunc != nil {
		return m.OutputFormatFunc()
	}
	return "table"
}

// OverridesPath returns the path using the mock function or "".
func (m *Mock) OverridesPath() string {
	if m.OverridesPathFunc != nil {
		return m.OverridesPathFunc()
	}
	return ""
}

// ConnectKeys returns the keys using the mock function or nil.
func (m *Mock) ConnectKeys() []string {
	if m.ConnectKeysFunc != nil {
		return m.ConnectKeysFunc()
	}
	return nil
}

// AutoUpdateInterval returns the interval using the mock function or the default.
func (m *Mock) AutoUpdateInterval() time.Duration {
	if m.AutoUpdateIntervalFunc != nil {
		return m.AutoUpdateIntervalFunc()
	}
	return constants.DefaultAutoUpdateInterval
}

// Version returns version using the mock function or "dev".
func (m *Mock) Version() string {
	if m.VersionFunc != nil {
		return m.VersionFunc()
	}
	return "dev"
}

// Commit returns commit using the mock function or "unknown".
func (m *Mock) Commit() string {
	if m.CommitFunc != nil {
		return m.CommitFunc()
	}
	return "unknown"
}

// Date returns date using the mock function or "unknown".
func (m *Mock) Date() string {
	if m.DateFunc != nil {
		return m.DateFunc()
	}
	return "unknown"
}

// BuiltBy returns builtBy using the mock function or "test".
func (m *Mock) BuiltBy() string {
	if m.BuiltByFunc != nil {
		return m.BuiltByFunc()
	}
	return "test"
}

// Ensure Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
