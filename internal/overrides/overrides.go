// Package overrides reads user configured MCP servers from a file on disk.
//
// The file may be YAML, TOML or JSON, chosen by extension. Two layouts are
// understood:
//
//	servers:                 # any format, ordered
//	  - key: fetch
//	    command: uvx
//	    args: [mcp-server-fetch]
//
//	{"mcpServers": {"fetch": {"command": "uvx", "args": ["mcp-server-fetch"]}}}
//
// The second layout is the one desktop MCP clients write, and is read from
// JSON only. A missing file is not an error: the user simply has no
// overrides yet.
package overrides

import (
	"context"
	"io/fs"
	"os"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/servers"
)

// Source is an OverrideSource backed by a file. The file is read on every
// Fetch.
type Source struct {
	path string
}

// New creates an override source for path.
func New(path string) *Source {
	return &Source{path: path}
}

// Path returns the file the source reads.
func (s *Source) Path() string {
	return s.path
}

// Fetch reads and parses the overrides file.
func (s *Source) Fetch(ctx context.Context) ([]servers.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	format, err := FormatFor(s.path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			logging.FromContext(ctx).Debug().
				Str("file", s.path).
				Msg("No overrides file")
			return []servers.Descriptor{}, nil
		}
		return nil, errors.WrapIO("read", s.path, err)
	}

	list, err := Parse(data, format, s.path)
	if err != nil {
		return nil, err
	}

	logging.FromContext(ctx).Debug().
		Str("file", s.path).
		Str("format", format.String()).
		Int("servers", len(list)).
		Msg("Fetched overrides")
	return list, nil
}

// Load reads and decodes path without validating the entries, for callers
// that report every problem at once.
func Load(path string) ([]servers.Descriptor, error) {
	format, err := FormatFor(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.WrapIO("read", path, err)
	}
	return Decode(data, format, path)
}
