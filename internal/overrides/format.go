package overrides

import (
	"path/filepath"
	"strings"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Format is the encoding of an overrides file.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// String returns the format name.
func (f Format) String() string {
	return string(f)
}

// FormatFor picks the format from the file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", &errors.ConfigError{
		Component: "overrides",
		Message:   "unsupported file extension " + filepath.Ext(path) + " (want .yaml, .yml, .toml or .json)",
		Err:       errors.ErrUnsupported,
	}
}
