// Package sessions keeps live MCP client sessions, one per server key, and
// reports the connected keys as the active set.
//
// A session that ends on its own (the server exits, the stream drops) is
// removed from the set by a monitor goroutine, so ActiveKeys always
// reflects what is actually connected.
package sessions

import (
	"context"
	"sync"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/servers"
)

// ChangeFunc is called after a server connects or its session ends.
type ChangeFunc func(key string, connected bool)

// Manager owns the MCP client sessions. It is safe for concurrent use.
type Manager struct {
	client         *mcp.Client
	dial           Dialer
	connectTimeout time.Duration
	logger         *zerolog.Logger
	onChange       ChangeFunc

	mu       sync.Mutex
	sessions map[string]*mcp.ClientSession
	closed   bool
	monitors conc.WaitGroup
}

// Option configures a Manager.
type Option func(*Manager)

// WithDialer replaces the transport factory.
func WithDialer(dial Dialer) Option {
	return func(m *Manager) {
		m.dial = dial
	}
}

// WithConnectTimeout bounds each Connect. Zero disables the bound.
func WithConnectTimeout(d time.Duration) Option {
	return func(m *Manager) {
		m.connectTimeout = d
	}
}

// WithLogger sets the logger used by session monitors.
func WithLogger(logger *zerolog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// WithOnChange registers a callback for connect and disconnect events.
func WithOnChange(fn ChangeFunc) Option {
	return func(m *Manager) {
		m.onChange = fn
	}
}

// NewManager creates a session manager.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		client: mcp.NewClient(&mcp.Implementation{
			Name:    constants.ClientName,
			Version: constants.ClientVersion,
		}, nil),
		dial:           DefaultDialer,
		connectTimeout: constants.ConnectTimeout,
		logger:         logging.Default(),
		sessions:       make(map[string]*mcp.ClientSession),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Connect opens a session to d. Connecting an already connected key is a
// no-op.
func (m *Manager) Connect(ctx context.Context, d servers.Descriptor) error {
	if err := d.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return &errors.SessionError{Server: d.Key, Err: errors.ErrCanceled}
	}
	if _, ok := m.sessions[d.Key]; ok {
		m.mu.Unlock()
		return nil
	}
	m.mu.Unlock()

	transportName := d.EffectiveTransport().String()
	transport, err := m.dial(ctx, d)
	if err != nil {
		return &errors.SessionError{Server: d.Key, Transport: transportName, Err: err}
	}

	connectCtx := ctx
	if m.connectTimeout > 0 {
		var cancel context.CancelFunc
		connectCtx, cancel = context.WithTimeout(ctx, m.connectTimeout)
		defer cancel()
	}

	session, err := m.client.Connect(connectCtx, transport, nil)
	if err != nil {
		return &errors.SessionError{Server: d.Key, Transport: transportName, Err: err}
	}

	m.mu.Lock()
	if _, ok := m.sessions[d.Key]; ok || m.closed {
		// lost a race with a concurrent Connect or with Close
		m.mu.Unlock()
		_ = session.Close()
		return nil
	}
	m.sessions[d.Key] = session
	m.monitors.Go(func() { m.monitor(d.Key, session) })
	m.mu.Unlock()

	logging.FromContext(ctx).Info().
		Str("server", d.Key).
		Str("transport", transportName).
		Msg("Connected")
	m.notify(d.Key, true)
	return nil
}

// monitor drops the session from the set once it ends, however it ends.
func (m *Manager) monitor(key string, session *mcp.ClientSession) {
	err := session.Wait()

	m.mu.Lock()
	current, ok := m.sessions[key]
	removed := ok && current == session
	if removed {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if !removed {
		return
	}
	event := m.logger.Info()
	if err != nil {
		event = m.logger.Warn().Err(err)
	}
	event.Str("server", key).Msg("Session ended")
	m.notify(key, false)
}

// Disconnect closes the session for key.
func (m *Manager) Disconnect(key string) error {
	m.mu.Lock()
	session, ok := m.sessions[key]
	if ok {
		delete(m.sessions, key)
	}
	m.mu.Unlock()

	if !ok {
		return &errors.SessionError{Server: key, Err: errors.ErrNotConnected}
	}

	err := session.Close()
	m.logger.Info().Str("server", key).Msg("Disconnected")
	m.notify(key, false)
	if err != nil {
		return &errors.SessionError{Server: key, Err: err}
	}
	return nil
}

// Connected reports whether key has a live session.
func (m *Manager) Connected(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[key]
	return ok
}

// ActiveKeys implements sources.ActiveSource.
func (m *Manager) ActiveKeys(ctx context.Context) (servers.ActiveSet, error) {
	if err := ctx.Err(); err != nil {
		return servers.ActiveSet{}, err
	}
	m.mu.Lock()
	keys := make([]string, 0, len(m.sessions))
	for k := range m.sessions {
		keys = append(keys, k)
	}
	m.mu.Unlock()
	return servers.NewActiveSet(keys...), nil
}

// Close ends every session and waits for the monitors to finish. The
// manager cannot be reused.
func (m *Manager) Close() error {
	m.mu.Lock()
	m.closed = true
	sessions := m.sessions
	m.sessions = make(map[string]*mcp.ClientSession)
	m.mu.Unlock()

	var errs []error
	for key, session := range sessions {
		if err := session.Close(); err != nil {
			errs = append(errs, &errors.SessionError{Server: key, Err: err})
		}
	}
	m.monitors.Wait()
	return errors.Join(errs...)
}

func (m *Manager) notify(key string, connected bool) {
	if m.onChange != nil {
		m.onChange(key, connected)
	}
}
