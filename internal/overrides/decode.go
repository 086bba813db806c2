package overrides

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/goccy/go-yaml"
	"github.com/pelletier/go-toml/v2"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

// file is the common layout: an ordered list of servers.
type file struct {
	Servers []servers.Descriptor `json:"servers" yaml:"servers" toml:"servers"`
}

// desktopFile is the layout used by desktop MCP clients: a map from server
// name to its launch settings.
type desktopFile struct {
	MCPServers map[string]desktopEntry `json:"mcpServers"`
}

type desktopEntry struct {
	servers.Descriptor
	Type servers.Transport `json:"type,omitempty"`
}

// Decode parses data without validating the entries. Entries keep file
// order; desktop style maps are ordered by key.
func Decode(data []byte, format Format, path string) ([]servers.Descriptor, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []servers.Descriptor{}, nil
	}

	var (
		doc file
		err error
	)
	switch format {
	case FormatYAML:
		err = yaml.Unmarshal(data, &doc)
	case FormatTOML:
		err = toml.Unmarshal(data, &doc)
	case FormatJSON:
		return decodeJSON(data, path)
	default:
		return nil, &errors.ParseError{
			Format:  format.String(),
			File:    path,
			Message: "unsupported format",
			Err:     errors.ErrUnsupported,
		}
	}
	if err != nil {
		return nil, errors.WrapParse(format.String(), path, err)
	}
	if doc.Servers == nil {
		return []servers.Descriptor{}, nil
	}
	return doc.Servers, nil
}

func decodeJSON(data []byte, path string) ([]servers.Descriptor, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	if _, ok := probe["mcpServers"]; !ok {
		var doc file
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, errors.WrapParse("json", path, err)
		}
		if doc.Servers == nil {
			return []servers.Descriptor{}, nil
		}
		return doc.Servers, nil
	}

	var doc desktopFile
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("json", path, err)
	}

	keys := make([]string, 0, len(doc.MCPServers))
	for k := range doc.MCPServers {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	list := make([]servers.Descriptor, 0, len(keys))
	for _, k := range keys {
		entry := doc.MCPServers[k]
		d := entry.Descriptor
		d.Key = k
		if d.Transport == "" {
			d.Transport = entry.Type
		}
		list = append(list, d)
	}
	return list, nil
}

// Parse decodes data and validates every entry. The first invalid entry
// fails the whole file.
func Parse(data []byte, format Format, path string) ([]servers.Descriptor, error) {
	list, err := Decode(data, format, path)
	if err != nil {
		return nil, err
	}
	for i, d := range list {
		if err := d.Validate(); err != nil {
			return nil, &errors.ParseError{
				Format:  format.String(),
				File:    path,
				Message: fmt.Sprintf("server #%d: %v", i, err),
				Err:     err,
			}
		}
	}
	return list, nil
}
