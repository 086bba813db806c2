package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/servers"
)

func TestMemoryCatalog(t *testing.T) {
	ctx := context.Background()
	cat := NewCatalog()

	list, err := cat.Load(ctx, false)
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)

	cat.Add(servers.Descriptor{Key: "a", Command: "x"})
	cat.Add(servers.Descriptor{Key: "b", Command: "y"})
	list, err = cat.Load(ctx, false)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	cat.Set([]servers.Descriptor{{Key: "c", Command: "z"}})
	list, err = cat.Load(ctx, true)
	require.NoError(t, err)
	assert.Equal(t, []servers.Descriptor{{Key: "c", Command: "z"}}, list)
}
