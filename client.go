// Package toolmap provides the main entry point for the toolmap MCP server
// catalog. It owns the three inputs of the reconciled server view (the
// builtin catalog, the user's overrides and the set of active servers),
// refreshes them concurrently, and keeps the merged view up to date.
//
// The client wraps pkg/servers.Reconcile with:
//   - Concurrent loads where a failing or panicking source keeps its last value
//   - Overlap handling: a new refresh cancels the one in flight
//   - Event hooks for servers added, updated and removed
//   - Optional background refresh on an interval
//
// Example usage:
//
//	// Create a client over the embedded catalog and a user overrides file
//	tm, err := toolmap.New(
//	    toolmap.WithOverrideSource(overrides.New("~/.toolmap/servers.yaml")),
//	    toolmap.WithActiveSource(sessionManager),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer tm.Close()
//
//	tm.OnServerAdded(func(s servers.Descriptor) {
//	    log.Printf("new server: %s", s.Key)
//	})
//
//	// Reload everything, bypassing the catalog cache
//	result := tm.Refresh(ctx, toolmap.WithForce(true))
//	for _, s := range tm.Servers() {
//	    fmt.Println(s.Key, s.IsActive)
//	}
package toolmap

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/servers"
)

// Compile-time interface check to ensure proper implementation.
var _ Client = (*client)(nil)

// Viewer provides copy-on-read access to the reconciled view.
type Viewer interface {
	// Servers returns the reconciled server list.
	Servers() []servers.Descriptor

	// Snapshot returns the inputs and the reconciled view together.
	Snapshot() Snapshot
}

// Client owns the reconciled server view.
type Client interface {
	Viewer

	// Refresher reloads the inputs
	Refresher

	// AutoUpdater provides access to automatic refresh controls
	AutoUpdater

	// Hooks provides access to event callback registration
	Hooks

	// Close stops auto updates and cancels any refresh in flight.
	Close() error
}

// Snapshot is a consistent copy of the client state at one generation.
type Snapshot struct {
	Catalog     []servers.Descriptor
	Overrides   []servers.Descriptor
	Active      servers.ActiveSet
	Servers     []servers.Descriptor
	RefreshedAt time.Time // zero until the first commit
	Generation  uint64    // generation of the refresh that produced this state
}

// state is the committed input set and the view derived from it.
type state struct {
	catalog     []servers.Descriptor
	overrides   []servers.Descriptor
	active      servers.ActiveSet
	merged      []servers.Descriptor
	refreshedAt time.Time
	generation  uint64
}

// client is the internal implementation of the Client interface.
type client struct {
	options *options

	mu    sync.RWMutex
	state state

	// refresh bookkeeping, guarded by refreshMu
	refreshMu  sync.Mutex
	issued     uint64             // last generation handed out
	inFlight   int                // refreshes not yet finished
	cancelLast context.CancelFunc // cancels the newest refresh in flight
	closed     bool

	// auto update state, guarded by autoMu
	autoMu       sync.Mutex
	updateTicker *time.Ticker
	stopCh       chan struct{}
	updateCancel context.CancelFunc
	updateDone   chan struct{}

	hooks *hooks

	// pending holds committed change batches awaiting hook delivery, in
	// commit order. Guarded by refreshMu; drained under deliverMu.
	pending   []servers.Changes
	deliverMu sync.Mutex
}

// New creates a new Client instance with the given options. Unless
// disabled with WithInitialRefresh(false), the inputs are loaded once
// before New returns. Load failures do not fail New: the affected input
// simply starts empty.
func New(opts ...Option) (Client, error) {
	o, err := defaults().apply(opts...)
	if err != nil {
		return nil, errors.WrapResource("create", "client", "", err)
	}

	c := &client{
		options: o,
		state: state{
			catalog:   []servers.Descriptor{},
			overrides: []servers.Descriptor{},
			merged:    []servers.Descriptor{},
		},
		stopCh: make(chan struct{}),
		hooks:  newHooks(),
	}
	close(c.stopCh)

	if o.initialRefresh {
		result := c.Refresh(context.Background())
		c.logger().Debug().
			Str("request_id", result.RequestID).
			Int("servers", result.Servers).
			Int("failed", len(result.Errors)).
			Msg("Initial refresh finished")
	}

	if o.autoUpdatesEnabled {
		if err := c.AutoUpdatesOn(); err != nil {
			return nil, errors.WrapResource("start", "auto-updates", "", err)
		}
	}

	return c, nil
}

// Servers returns a copy of the reconciled view.
func (c *client) Servers() []servers.Descriptor {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := servers.CloneAll(c.state.merged)
	if out == nil {
		out = []servers.Descriptor{}
	}
	return out
}

// Snapshot returns a copy of the committed state.
func (c *client) Snapshot() Snapshot {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Snapshot{
		Catalog:     servers.CloneAll(c.state.catalog),
		Overrides:   servers.CloneAll(c.state.overrides),
		Active:      c.state.active,
		Servers:     servers.CloneAll(c.state.merged),
		RefreshedAt: c.state.refreshedAt,
		Generation:  c.state.generation,
	}
}

// Close stops auto updates and cancels the refresh in flight, if any.
// Refreshes started after Close return immediately without loading.
func (c *client) Close() error {
	if err := c.AutoUpdatesOff(); err != nil {
		return err
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	c.closed = true
	if c.cancelLast != nil {
		c.cancelLast()
		c.cancelLast = nil
	}
	return nil
}

func (c *client) logger() *zerolog.Logger {
	if c.options.logger != nil {
		return c.options.logger
	}
	return logging.Default()
}
