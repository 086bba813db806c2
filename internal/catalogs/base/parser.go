package base

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

// document is the on-disk layout of a catalog file.
type document struct {
	Servers []servers.Descriptor `yaml:"servers"`
}

// Parse decodes a catalog YAML document and validates every entry.
// An empty document yields an empty, non-nil list.
func Parse(data []byte, path string) ([]servers.Descriptor, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []servers.Descriptor{}, nil
	}

	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.WrapParse("yaml", path, err)
	}

	for i, d := range doc.Servers {
		if err := d.Validate(); err != nil {
			return nil, &errors.ParseError{
				Format:  "yaml",
				File:    path,
				Message: fmt.Sprintf("server #%d: %v", i, err),
				Err:     err,
			}
		}
	}

	if doc.Servers == nil {
		return []servers.Descriptor{}, nil
	}
	return doc.Servers, nil
}
