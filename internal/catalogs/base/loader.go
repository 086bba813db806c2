// Package base holds the loading machinery shared by the catalog sources:
// a FileReader abstraction over embedded and on-disk files, the catalog
// document parser, and a caching Loader.
package base

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/servers"
)

// Loader reads one catalog file through a FileReader and caches the parsed
// result until the file's modification time changes or a forced load is
// requested.
type Loader struct {
	reader FileReader
	path   string

	mu      sync.Mutex
	loaded  bool
	modTime time.Time
	cached  []servers.Descriptor
}

// NewLoader creates a new loader for path read through reader.
func NewLoader(reader FileReader, path string) *Loader {
	return &Loader{
		reader: reader,
		path:   path,
	}
}

// Path returns the file the loader reads.
func (l *Loader) Path() string {
	return l.path
}

// Load returns the catalog. The cached copy is served unless force is set
// or the file changed since the last successful read. Callers own the
// returned slice.
func (l *Loader) Load(ctx context.Context, force bool) ([]servers.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	modTime, err := l.reader.ModTime(l.path)
	if err != nil {
		return nil, errors.WrapIO("stat", l.path, err)
	}

	if l.loaded && !force && modTime.Equal(l.modTime) {
		return servers.CloneAll(l.cached), nil
	}

	data, err := l.reader.ReadFile(l.path)
	if err != nil {
		return nil, errors.WrapIO("read", l.path, err)
	}

	list, err := Parse(data, l.path)
	if err != nil {
		return nil, err
	}

	if dups := servers.DuplicateKeys(list); len(dups) > 0 {
		logging.FromContext(ctx).Warn().
			Str("file", l.path).
			Strs("keys", dups).
			Msg("Catalog contains duplicate server keys; the first entry of each wins on override")
	}

	logging.FromContext(ctx).Debug().
		Str("file", l.path).
		Int("servers", len(list)).
		Bool("force", force).
		Msg("Loaded catalog")

	l.loaded = true
	l.modTime = modTime
	l.cached = list
	return servers.CloneAll(list), nil
}

// Invalidate drops the cached catalog so the next Load re-reads the file.
func (l *Loader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.loaded = false
	l.cached = nil
}
