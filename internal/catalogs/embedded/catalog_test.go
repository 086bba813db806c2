package embedded

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/servers"
)

func TestBuiltinCatalog(t *testing.T) {
	list, err := NewCatalog().Load(context.Background(), false)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	assert.Empty(t, servers.DuplicateKeys(list), "builtin catalog keys must be unique")
	for _, d := range list {
		assert.NoError(t, d.Validate(), d.Key)
		assert.False(t, d.IsActive, "builtin entries ship inactive: %s", d.Key)
	}

	fs, ok := servers.Find(list, "filesystem")
	require.True(t, ok)
	assert.Equal(t, servers.TransportStdio, fs.EffectiveTransport())
}

func TestCatalogFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"catalog/servers.yaml": {Data: []byte("servers:\n  - key: only\n    url: https://example.com/mcp\n    transport: sse\n")},
	}
	list, err := NewCatalogFS(fsys).Load(context.Background(), true)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, servers.TransportSSE, list[0].Transport)
}
