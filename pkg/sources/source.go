// Package sources defines the three inputs of a reconciliation cycle and
// the interfaces that load them:
//
//   - CatalogSource loads the builtin server catalog
//   - OverrideSource fetches the user configured servers
//   - ActiveSource reports which server keys are currently active
//
// Each source is invoked independently and its result replaces the previous
// value wholesale. Func adapters and static sources make it easy to plug in
// ad hoc loaders and fixed values.
//
// Example usage:
//
//	catalog := sources.StaticCatalog(servers.Descriptor{Key: "fetch", Command: "uvx"})
//	active := sources.ActiveFunc(func(ctx context.Context) (servers.ActiveSet, error) {
//	    return servers.NewActiveSet(manager.Keys()...), nil
//	})
package sources

import (
	"context"

	"github.com/agentstation/toolmap/pkg/servers"
)

// ID names one of the refresh inputs.
type ID string

// String returns the string representation of a source ID.
func (id ID) String() string {
	return string(id)
}

// The three refresh inputs.
const (
	CatalogID   ID = "catalog"
	OverridesID ID = "overrides"
	ActiveID    ID = "active"
)

// IDs returns all source IDs in refresh order.
func IDs() []ID {
	return []ID{CatalogID, OverridesID, ActiveID}
}

// CatalogSource loads the builtin catalog. force bypasses any cache the
// source keeps.
type CatalogSource interface {
	Load(ctx context.Context, force bool) ([]servers.Descriptor, error)
}

// OverrideSource fetches user configured descriptors.
type OverrideSource interface {
	Fetch(ctx context.Context) ([]servers.Descriptor, error)
}

// ActiveSource reports the keys of the servers that are currently active.
type ActiveSource interface {
	ActiveKeys(ctx context.Context) (servers.ActiveSet, error)
}

// CatalogFunc adapts a function to CatalogSource.
type CatalogFunc func(ctx context.Context, force bool) ([]servers.Descriptor, error)

// Load implements CatalogSource.
func (f CatalogFunc) Load(ctx context.Context, force bool) ([]servers.Descriptor, error) {
	return f(ctx, force)
}

// OverrideFunc adapts a function to OverrideSource.
type OverrideFunc func(ctx context.Context) ([]servers.Descriptor, error)

// Fetch implements OverrideSource.
func (f OverrideFunc) Fetch(ctx context.Context) ([]servers.Descriptor, error) {
	return f(ctx)
}

// ActiveFunc adapts a function to ActiveSource.
type ActiveFunc func(ctx context.Context) (servers.ActiveSet, error)

// ActiveKeys implements ActiveSource.
func (f ActiveFunc) ActiveKeys(ctx context.Context) (servers.ActiveSet, error) {
	return f(ctx)
}
