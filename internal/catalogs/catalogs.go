// Package catalogs selects a builtin catalog source by kind.
package catalogs

import (
	"github.com/agentstation/toolmap/internal/catalogs/embedded"
	"github.com/agentstation/toolmap/internal/catalogs/files"
	"github.com/agentstation/toolmap/internal/catalogs/memory"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/sources"
)

type Catalog string

const (
	Embedded Catalog = "embedded"
	Files    Catalog = "files"
	Memory   Catalog = "memory"
)

func (c Catalog) String() string {
	return string(c)
}

// New returns the catalog source for kind. path is required for Files and
// ignored otherwise. A Memory catalog starts empty.
func New(kind Catalog, path string) (sources.CatalogSource, error) {
	switch kind {
	case Embedded, "":
		return embedded.NewCatalog(), nil
	case Files:
		if path == "" {
			return nil, &errors.ValidationError{
				Field:   "catalog_path",
				Value:   path,
				Message: "required for a files catalog",
			}
		}
		return files.NewCatalog(path), nil
	case Memory:
		return memory.NewCatalog(), nil
	default:
		return nil, &errors.ValidationError{
			Field:   "catalog",
			Value:   kind,
			Message: "must be one of embedded, files, memory",
		}
	}
}

// For picks Files when path is set and Embedded otherwise.
func For(path string) sources.CatalogSource {
	if path == "" {
		return embedded.NewCatalog()
	}
	return files.NewCatalog(path)
}
