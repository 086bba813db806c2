package toolmap

import (
	"sync"

	"github.com/agentstation/toolmap/pkg/servers"
)

// Hook function types for server events
type (
	// ServerAddedHook is called when a server appears in the reconciled view
	ServerAddedHook func(server servers.Descriptor)

	// ServerUpdatedHook is called when a server in the reconciled view changes
	ServerUpdatedHook func(old, new servers.Descriptor)

	// ServerRemovedHook is called when a server leaves the reconciled view
	ServerRemovedHook func(server servers.Descriptor)
)

// Hooks registers callbacks for changes to the reconciled view. Callbacks
// run outside the client locks, one batch at a time, in commit order. A
// batch may be delivered by the goroutine of an earlier refresh that is
// still running its hooks.
type Hooks interface {
	OnServerAdded(fn ServerAddedHook)
	OnServerUpdated(fn ServerUpdatedHook)
	OnServerRemoved(fn ServerRemovedHook)
}

// Compile-time interface check to ensure proper implementation.
var _ Hooks = (*client)(nil)

// OnServerAdded registers fn for servers entering the reconciled view.
func (c *client) OnServerAdded(fn ServerAddedHook) { c.hooks.OnServerAdded(fn) }

// OnServerUpdated registers fn for servers that changed in the reconciled view.
func (c *client) OnServerUpdated(fn ServerUpdatedHook) { c.hooks.OnServerUpdated(fn) }

// OnServerRemoved registers fn for servers leaving the reconciled view.
func (c *client) OnServerRemoved(fn ServerRemovedHook) { c.hooks.OnServerRemoved(fn) }

// hooks manages event callbacks for view changes
type hooks struct {
	mu              sync.RWMutex
	onServerAdded   []ServerAddedHook
	onServerUpdated []ServerUpdatedHook
	onServerRemoved []ServerRemovedHook
}

// newHooks creates a new hooks instance
func newHooks() *hooks {
	return &hooks{}
}

// OnServerAdded registers a callback for when servers are added
func (h *hooks) OnServerAdded(fn ServerAddedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onServerAdded = append(h.onServerAdded, fn)
}

// OnServerUpdated registers a callback for when servers are updated
func (h *hooks) OnServerUpdated(fn ServerUpdatedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onServerUpdated = append(h.onServerUpdated, fn)
}

// OnServerRemoved registers a callback for when servers are removed
func (h *hooks) OnServerRemoved(fn ServerRemovedHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onServerRemoved = append(h.onServerRemoved, fn)
}

// trigger fires the hooks for changes, added first, then updated, then
// removed. Each hook receives its own copy of the descriptors.
func (h *hooks) trigger(changes servers.Changes) {
	if changes.Empty() {
		return
	}

	h.mu.RLock()
	added := h.onServerAdded
	updated := h.onServerUpdated
	removed := h.onServerRemoved
	h.mu.RUnlock()

	for _, d := range changes.Added {
		for _, hook := range added {
			hook(d.Clone())
		}
	}
	for _, u := range changes.Updated {
		for _, hook := range updated {
			hook(u.Old.Clone(), u.New.Clone())
		}
	}
	for _, d := range changes.Removed {
		for _, hook := range removed {
			hook(d.Clone())
		}
	}
}
