// Package embedded provides the builtin catalog compiled into the binary.
package embedded

import (
	"context"
	"io/fs"

	"github.com/agentstation/toolmap/internal/catalogs/base"
	embeddedCatalog "github.com/agentstation/toolmap/internal/embedded"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/servers"
	"github.com/agentstation/toolmap/pkg/sources"
)

// catalog represents the embedded catalog of MCP servers.
type catalog struct {
	loader *base.Loader
}

// NewCatalog creates a new embedded catalog
func NewCatalog() sources.CatalogSource {
	return NewCatalogFS(embeddedCatalog.FS)
}

// NewCatalogFS creates a catalog reading catalog/servers.yaml from fsys.
func NewCatalogFS(fsys fs.FS) sources.CatalogSource {
	reader := &base.FSReader{FS: fsys, Prefix: "catalog"}
	return &catalog{
		loader: base.NewLoader(reader, constants.CatalogFileName),
	}
}

// Load parses the embedded catalog once and serves copies of it afterwards.
// force re-parses.
func (c *catalog) Load(ctx context.Context, force bool) ([]servers.Descriptor, error) {
	return c.loader.Load(ctx, force)
}
