package toolmap

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
	"github.com/agentstation/toolmap/pkg/sources"
)

func countingCatalog(calls *atomic.Int32) sources.CatalogSource {
	return sources.CatalogFunc(func(context.Context, bool) ([]servers.Descriptor, error) {
		calls.Add(1)
		return []servers.Descriptor{stdio("a")}, nil
	})
}

func TestAutoUpdates(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t,
		WithInitialRefresh(false),
		WithCatalogSource(countingCatalog(&calls)),
		WithAutoUpdates(true),
		WithAutoUpdateInterval(10*time.Millisecond),
	)

	assert.Eventually(t, func() bool { return calls.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"a"}, keysOf(c.Servers()))

	require.NoError(t, c.AutoUpdatesOff())
	stopped := calls.Load()
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())

	// off twice is harmless, on again resumes
	require.NoError(t, c.AutoUpdatesOff())
	require.NoError(t, c.AutoUpdatesOn())
	assert.Eventually(t, func() bool { return calls.Load() > stopped }, 2*time.Second, 5*time.Millisecond)
}

func TestAutoUpdatesOnRejectsNonPositiveInterval(t *testing.T) {
	c := newTestClient(t, WithInitialRefresh(false), WithAutoUpdateInterval(-time.Second))
	err := c.AutoUpdatesOn()
	require.Error(t, err)
	var verr *errors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "autoUpdateInterval", verr.Field)
}

func TestCloseStopsAutoUpdates(t *testing.T) {
	var calls atomic.Int32
	c := newTestClient(t,
		WithInitialRefresh(false),
		WithCatalogSource(countingCatalog(&calls)),
		WithAutoUpdates(true),
		WithAutoUpdateInterval(5*time.Millisecond),
	)
	assert.Eventually(t, func() bool { return calls.Load() >= 1 }, 2*time.Second, 5*time.Millisecond)

	require.NoError(t, c.Close())
	stopped := calls.Load()
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, stopped, calls.Load())
}
