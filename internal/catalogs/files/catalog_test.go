package files

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
)

func TestFilesCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("servers:\n  - key: local\n    command: ./server\n"), 0o644))

	cat := NewCatalog(path)
	list, err := cat.Load(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "local", list[0].Key)

	require.NoError(t, os.WriteFile(path, []byte("servers:\n  - key: other\n    command: ./server\n"), 0o644))
	forced, err := cat.Load(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "other", forced[0].Key)
}

func TestFilesCatalogMissingFile(t *testing.T) {
	_, err := NewCatalog(filepath.Join(t.TempDir(), "missing.yaml")).Load(context.Background(), false)
	require.Error(t, err)
	var ioErr *errors.IOError
	assert.ErrorAs(t, err, &ioErr)
}
