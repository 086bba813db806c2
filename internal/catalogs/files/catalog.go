// Package files provides a file-based catalog implementation.
package files

import (
	"context"
	"path/filepath"

	"github.com/agentstation/toolmap/internal/catalogs/base"
	"github.com/agentstation/toolmap/pkg/servers"
	"github.com/agentstation/toolmap/pkg/sources"
)

// catalog reads the builtin catalog from a YAML file on disk.
type catalog struct {
	loader *base.Loader
}

// NewCatalog creates a file-based catalog reading path.
func NewCatalog(path string) sources.CatalogSource {
	reader := &base.FilesystemFileReader{BasePath: filepath.Dir(path)}
	return &catalog{
		loader: base.NewLoader(reader, filepath.Base(path)),
	}
}

// Load reads the catalog file. The previous result is reused while the
// file's modification time is unchanged, unless force is set.
func (c *catalog) Load(ctx context.Context, force bool) ([]servers.Descriptor, error) {
	return c.loader.Load(ctx, force)
}
