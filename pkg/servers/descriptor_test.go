package servers_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

func TestDescriptorValidate(t *testing.T) {
	tests := []struct {
		name      string
		desc      servers.Descriptor
		wantField string
	}{
		{name: "stdio ok", desc: servers.Descriptor{Key: "git", Command: "uvx"}},
		{name: "http inferred ok", desc: servers.Descriptor{Key: "remote", URL: "https://example.com/mcp"}},
		{name: "sse ok", desc: servers.Descriptor{Key: "events", Transport: servers.TransportSSE, URL: "https://example.com/sse"}},
		{name: "missing key", desc: servers.Descriptor{Command: "uvx"}, wantField: "key"},
		{name: "blank key", desc: servers.Descriptor{Key: "  ", Command: "uvx"}, wantField: "key"},
		{name: "unknown transport", desc: servers.Descriptor{Key: "x", Transport: "carrier-pigeon"}, wantField: "transport"},
		{name: "stdio without command", desc: servers.Descriptor{Key: "x", Transport: servers.TransportStdio}, wantField: "command"},
		{name: "http without url", desc: servers.Descriptor{Key: "x", Transport: servers.TransportHTTP}, wantField: "url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, errors.IsValidationError(err))
			var verr *errors.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Field)
		})
	}
}

func TestDescriptorEffectiveTransport(t *testing.T) {
	assert.Equal(t, servers.TransportStdio, servers.Descriptor{Command: "npx"}.EffectiveTransport())
	assert.Equal(t, servers.TransportHTTP, servers.Descriptor{URL: "http://localhost"}.EffectiveTransport())
	assert.Equal(t, servers.TransportSSE, servers.Descriptor{Transport: servers.TransportSSE, URL: "http://localhost"}.EffectiveTransport())
}

func TestDescriptorClone(t *testing.T) {
	orig := servers.Descriptor{
		Key:     "k",
		Args:    []string{"a"},
		Tags:    []string{"t"},
		Env:     map[string]string{"E": "1"},
		Headers: map[string]string{"H": "1"},
	}
	c := orig.Clone()
	require.Equal(t, orig, c)

	c.Args[0], c.Tags[0] = "b", "u"
	c.Env["E"], c.Headers["H"] = "2", "2"
	assert.Equal(t, "a", orig.Args[0])
	assert.Equal(t, "t", orig.Tags[0])
	assert.Equal(t, "1", orig.Env["E"])
	assert.Equal(t, "1", orig.Headers["H"])

	assert.Nil(t, servers.Descriptor{Key: "bare"}.Clone().Args)
	assert.Nil(t, servers.CloneAll(nil))
}

func TestDescriptorRedacted(t *testing.T) {
	orig := servers.Descriptor{
		Key:     "remote",
		URL:     "https://example.com/mcp",
		Headers: map[string]string{"Authorization": "Bearer secret", "X-Team": "infra"},
		Env:     map[string]string{"LOG": "debug"},
	}

	red := orig.Redacted()
	assert.Equal(t, map[string]string{"Authorization": servers.Mask, "X-Team": servers.Mask}, red.Headers)
	assert.Equal(t, orig.Env, red.Env)
	assert.Equal(t, "Bearer secret", orig.Headers["Authorization"], "original untouched")
	assert.Nil(t, servers.Descriptor{Key: "local"}.Redacted().Headers)
}

func TestDisplayNameAndFind(t *testing.T) {
	assert.Equal(t, "git", servers.Descriptor{Key: "git"}.DisplayName())
	assert.Equal(t, "Git", servers.Descriptor{Key: "git", Name: "Git"}.DisplayName())

	list := []servers.Descriptor{{Key: "a", Name: "first"}, {Key: "a", Name: "second"}}
	d, ok := servers.Find(list, "a")
	require.True(t, ok)
	assert.Equal(t, "first", d.Name)

	_, ok = servers.Find(list, "missing")
	assert.False(t, ok)
}

func TestDuplicateKeys(t *testing.T) {
	list := []servers.Descriptor{{Key: "a"}, {Key: "b"}, {Key: "a"}, {Key: "a"}, {Key: "b"}}
	assert.Equal(t, []string{"a", "b"}, servers.DuplicateKeys(list))
	assert.Empty(t, servers.DuplicateKeys([]servers.Descriptor{{Key: "a"}}))
}

func TestActiveSet(t *testing.T) {
	s := servers.NewActiveSet("b", "a", "b")
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.Equal(t, []string{"a", "b"}, s.Keys())

	var zero servers.ActiveSet
	assert.False(t, zero.Contains("a"))
	assert.Equal(t, 0, zero.Len())
	assert.Empty(t, zero.Keys())

	assert.True(t, s.Equal(servers.NewActiveSet("a", "b")))
	assert.False(t, s.Equal(servers.NewActiveSet("a", "c")))
	assert.True(t, zero.Equal(servers.NewActiveSet()))
}
