package servers

import (
	"maps"
	"slices"
	"strings"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Transport identifies how a client reaches an MCP server.
type Transport string

// Supported transports.
const (
	TransportStdio Transport = "stdio"
	TransportHTTP  Transport = "http"
	TransportSSE   Transport = "sse"
)

// String returns the transport as a string.
func (t Transport) String() string {
	return string(t)
}

// Valid reports whether t is a known transport.
func (t Transport) Valid() bool {
	switch t {
	case TransportStdio, TransportHTTP, TransportSSE:
		return true
	}
	return false
}

// Descriptor describes one connectable MCP server.
//
// Key is the merge key. IsActive is derived state and is recomputed for
// override entries on every reconciliation. Every other field is carried
// through the reconciler untouched.
type Descriptor struct {
	Key         string            `json:"key" yaml:"key" toml:"key"`                                                 // Unique stable identifier
	Name        string            `json:"name,omitempty" yaml:"name,omitempty" toml:"name,omitempty"`                // Display name
	Description string            `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`
	Transport   Transport         `json:"transport,omitempty" yaml:"transport,omitempty" toml:"transport,omitempty"` // Empty means inferred
	Command     string            `json:"command,omitempty" yaml:"command,omitempty" toml:"command,omitempty"`       // stdio only
	Args        []string          `json:"args,omitempty" yaml:"args,omitempty" toml:"args,omitempty"`                // stdio only
	Env         map[string]string `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`                   // stdio only
	URL         string            `json:"url,omitempty" yaml:"url,omitempty" toml:"url,omitempty"`                   // http and sse
	Headers     map[string]string `json:"headers,omitempty" yaml:"headers,omitempty" toml:"headers,omitempty"`       // http and sse
	Homepage    string            `json:"homepage,omitempty" yaml:"homepage,omitempty" toml:"homepage,omitempty"`
	Tags        []string          `json:"tags,omitempty" yaml:"tags,omitempty" toml:"tags,omitempty"`
	IsActive    bool              `json:"is_active" yaml:"is_active,omitempty" toml:"is_active,omitempty"`
}

// DisplayName returns Name, or Key when no name is set.
func (d Descriptor) DisplayName() string {
	if d.Name != "" {
		return d.Name
	}
	return d.Key
}

// EffectiveTransport returns the explicit transport, or infers one:
// a URL means http, anything else means stdio.
func (d Descriptor) EffectiveTransport() Transport {
	if d.Transport != "" {
		return d.Transport
	}
	if d.URL != "" {
		return TransportHTTP
	}
	return TransportStdio
}

// Clone returns a deep copy of d. Slices and maps are not shared.
func (d Descriptor) Clone() Descriptor {
	c := d
	c.Args = slices.Clone(d.Args)
	c.Tags = slices.Clone(d.Tags)
	c.Env = maps.Clone(d.Env)
	c.Headers = maps.Clone(d.Headers)
	return c
}

// Mask replaces secret values in rendered output.
const Mask = "***"

// Redacted returns a copy of d with every header value replaced by Mask.
// Header values carry credentials such as bearer tokens.
func (d Descriptor) Redacted() Descriptor {
	c := d.Clone()
	for k := range c.Headers {
		c.Headers[k] = Mask
	}
	return c
}

// Validate checks that the descriptor is usable: a key is required and the
// transport must have the fields it needs.
func (d Descriptor) Validate() error {
	if strings.TrimSpace(d.Key) == "" {
		return &errors.ValidationError{
			Field:   "key",
			Value:   d.Key,
			Message: "cannot be empty",
		}
	}
	if d.Transport != "" && !d.Transport.Valid() {
		return &errors.ValidationError{
			Field:   "transport",
			Value:   d.Transport,
			Message: "must be one of stdio, http, sse (server " + d.Key + ")",
		}
	}

	switch d.EffectiveTransport() {
	case TransportStdio:
		if d.Command == "" {
			return &errors.ValidationError{
				Field:   "command",
				Value:   d.Command,
				Message: "required for stdio server " + d.Key,
			}
		}
	case TransportHTTP, TransportSSE:
		if d.URL == "" {
			return &errors.ValidationError{
				Field:   "url",
				Value:   d.URL,
				Message: "required for " + d.EffectiveTransport().String() + " server " + d.Key,
			}
		}
	}
	return nil
}

// Find returns the first descriptor in list with the given key.
func Find(list []Descriptor, key string) (Descriptor, bool) {
	for _, d := range list {
		if d.Key == key {
			return d, true
		}
	}
	return Descriptor{}, false
}

// CloneAll deep copies every descriptor in list. A nil list stays nil.
func CloneAll(list []Descriptor) []Descriptor {
	if list == nil {
		return nil
	}
	out := make([]Descriptor, len(list))
	for i, d := range list {
		out[i] = d.Clone()
	}
	return out
}

// DuplicateKeys returns every key that appears more than once in list,
// in order of its second appearance.
func DuplicateKeys(list []Descriptor) []string {
	seen := make(map[string]int, len(list))
	var dups []string
	for _, d := range list {
		seen[d.Key]++
		if seen[d.Key] == 2 {
			dups = append(dups, d.Key)
		}
	}
	return dups
}
