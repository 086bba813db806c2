// Package memory provides an in-memory catalog for testing and embedding
// callers that build their catalog programmatically.
package memory

import (
	"context"
	"sync"

	"github.com/agentstation/toolmap/pkg/servers"
)

// Catalog is a mutable in-memory catalog. It is safe for concurrent use.
type Catalog struct {
	mu   sync.RWMutex
	list []servers.Descriptor
}

// NewCatalog creates a new in-memory catalog holding a copy of list.
func NewCatalog(list ...servers.Descriptor) *Catalog {
	return &Catalog{list: servers.CloneAll(list)}
}

// Set replaces the catalog contents.
func (c *Catalog) Set(list []servers.Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = servers.CloneAll(list)
}

// Add appends a descriptor.
func (c *Catalog) Add(d servers.Descriptor) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.list = append(c.list, d.Clone())
}

// Load returns a copy of the current contents. There is no cache to bypass,
// so force has no effect.
func (c *Catalog) Load(ctx context.Context, _ bool) ([]servers.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := servers.CloneAll(c.list)
	if out == nil {
		out = []servers.Descriptor{}
	}
	return out, nil
}
