package toolmap

import (
	"context"
	"fmt"
	"time"

	"github.com/gofrs/uuid/v5"
	"github.com/sourcegraph/conc"
	"github.com/sourcegraph/conc/panics"

	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/logging"
	"github.com/agentstation/toolmap/pkg/servers"
	"github.com/agentstation/toolmap/pkg/sources"
)

// Compile-time interface check to ensure proper implementation.
var _ Refresher = (*client)(nil)

// Refresher reloads the inputs of the reconciled view.
type Refresher interface {
	// Refresh loads the catalog, the overrides and the active set
	// concurrently and commits whatever succeeded. It never returns an
	// error: failures are logged and reported in the result, and the
	// affected input keeps its previous value.
	Refresh(ctx context.Context, opts ...RefreshOption) *RefreshResult

	// Loading reports whether a refresh is in flight.
	Loading() bool
}

// RefreshOption configures a single refresh.
type RefreshOption func(*refreshOptions)

type refreshOptions struct {
	force bool
}

// WithForce makes the catalog source bypass its cache.
func WithForce(force bool) RefreshOption {
	return func(o *refreshOptions) {
		o.force = force
	}
}

// RefreshResult describes the outcome of one refresh.
type RefreshResult struct {
	RequestID  string
	Generation uint64

	// Committed is false when the refresh was superseded by a newer one or
	// the client was closed. Nothing from it reached the view.
	Committed  bool
	Superseded bool

	// Errors holds the failed loads. A load absent from Errors succeeded.
	Errors map[sources.ID]error

	Changes  servers.Changes
	Servers  int // size of the reconciled view after the refresh
	Duration time.Duration
}

// Failed reports whether any load failed.
func (r *RefreshResult) Failed() bool {
	return len(r.Errors) > 0
}

// Err joins the load failures in refresh order, or returns nil.
func (r *RefreshResult) Err() error {
	var errs []error
	for _, id := range sources.IDs() {
		if err, ok := r.Errors[id]; ok {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// loaded holds what one refresh managed to load. A nil error marks the
// input as usable.
type loaded struct {
	catalog      []servers.Descriptor
	catalogErr   error
	overrides    []servers.Descriptor
	overridesErr error
	active       servers.ActiveSet
	activeErr    error
}

// Refresh implements Refresher.
func (c *client) Refresh(ctx context.Context, opts ...RefreshOption) *RefreshResult {
	ro := &refreshOptions{}
	for _, opt := range opts {
		opt(ro)
	}

	start := time.Now()
	result := &RefreshResult{
		RequestID: uuid.Must(uuid.NewV6()).String(),
		Errors:    map[sources.ID]error{},
	}

	ctx = logging.WithLogger(ctx, c.logger())
	ctx = logging.WithRequestID(ctx, result.RequestID)
	ctx = logging.WithOperation(ctx, "refresh")
	logger := logging.FromContext(ctx)

	ctx, cancel, gen, ok := c.begin(ctx)
	if !ok {
		logger.Debug().Msg("Client closed; refresh skipped")
		result.Duration = time.Since(start)
		return result
	}
	defer cancel()
	result.Generation = gen

	logger.Debug().Uint64("generation", gen).Bool("force", ro.force).Msg("Refreshing")

	in := c.load(ctx, ro.force)

	committed, superseded := c.finish(gen, in, result)
	result.Committed = committed
	result.Superseded = superseded
	result.Duration = time.Since(start)

	for _, id := range sources.IDs() {
		err, failed := result.Errors[id]
		if !failed {
			continue
		}
		if superseded {
			logger.Debug().Err(err).Str("source", id.String()).Msg("Load interrupted by a newer refresh")
			continue
		}
		logger.Warn().Err(err).Str("source", id.String()).Msg("Load failed; keeping previous value")
	}

	if !committed {
		logger.Debug().Uint64("generation", gen).Bool("superseded", superseded).Msg("Refresh discarded")
		return result
	}

	logger.Info().
		Uint64("generation", gen).
		Int("servers", result.Servers).
		Int("added", len(result.Changes.Added)).
		Int("updated", len(result.Changes.Updated)).
		Int("removed", len(result.Changes.Removed)).
		Dur("duration", result.Duration).
		Msg("Refreshed")

	c.deliverHooks()
	return result
}

// deliverHooks fires queued change batches in commit order. Only one
// goroutine delivers at a time; a refresh that finds delivery in progress
// leaves its batch to that goroutine, which includes a hook that calls
// Refresh itself.
func (c *client) deliverHooks() {
	for {
		if !c.deliverMu.TryLock() {
			return
		}
		for {
			changes, ok := c.nextPending()
			if !ok {
				break
			}
			c.hooks.trigger(changes)
		}
		c.deliverMu.Unlock()

		c.refreshMu.Lock()
		more := len(c.pending) > 0
		c.refreshMu.Unlock()
		if !more {
			return
		}
	}
}

func (c *client) nextPending() (servers.Changes, bool) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	if len(c.pending) == 0 {
		return servers.Changes{}, false
	}
	next := c.pending[0]
	c.pending = c.pending[1:]
	return next, true
}

// Loading implements Refresher.
func (c *client) Loading() bool {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	return c.inFlight > 0
}

// begin registers a new refresh, cancelling the one before it.
func (c *client) begin(ctx context.Context) (context.Context, context.CancelFunc, uint64, bool) {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	if c.closed {
		return ctx, func() {}, 0, false
	}

	if c.cancelLast != nil {
		c.cancelLast()
	}

	var cancel context.CancelFunc
	if c.options.loadTimeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, c.options.loadTimeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}

	c.issued++
	c.inFlight++
	c.cancelLast = cancel
	return ctx, cancel, c.issued, true
}

// load runs the three loads concurrently. A panicking source is recovered
// and reported like any other failure.
func (c *client) load(ctx context.Context, force bool) loaded {
	var (
		in loaded
		wg conc.WaitGroup
	)

	wg.Go(func() {
		in.catalogErr = guard(sources.CatalogID, func() error {
			list, err := c.options.catalog.Load(logging.WithSource(ctx, sources.CatalogID.String()), force)
			in.catalog = list
			return err
		})
	})
	wg.Go(func() {
		in.overridesErr = guard(sources.OverridesID, func() error {
			list, err := c.options.overrides.Fetch(logging.WithSource(ctx, sources.OverridesID.String()))
			in.overrides = list
			return err
		})
	})
	wg.Go(func() {
		in.activeErr = guard(sources.ActiveID, func() error {
			set, err := c.options.active.ActiveKeys(logging.WithSource(ctx, sources.ActiveID.String()))
			in.active = set
			return err
		})
	})
	wg.Wait()

	return in
}

// guard runs fn, turning a panic into an error and wrapping any failure
// as a LoadError for id.
func guard(id sources.ID, fn func() error) error {
	var err error
	var pc panics.Catcher
	pc.Try(func() {
		err = fn()
	})
	if r := pc.Recovered(); r != nil {
		err = fmt.Errorf("source panicked: %w", r.AsError())
	}
	if err != nil {
		return errors.NewLoadError(id.String(), err)
	}
	return nil
}

// finish records the load outcome in result and, when gen is still the
// newest refresh, commits the successful loads and recomputes the view.
func (c *client) finish(gen uint64, in loaded, result *RefreshResult) (committed, superseded bool) {
	if in.catalogErr != nil {
		result.Errors[sources.CatalogID] = in.catalogErr
	}
	if in.overridesErr != nil {
		result.Errors[sources.OverridesID] = in.overridesErr
	}
	if in.activeErr != nil {
		result.Errors[sources.ActiveID] = in.activeErr
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	c.inFlight--
	if gen != c.issued {
		return false, true
	}
	c.cancelLast = nil
	if c.closed {
		return false, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	next := c.state
	if in.catalogErr == nil {
		next.catalog = nonNil(in.catalog)
	}
	if in.overridesErr == nil {
		next.overrides = nonNil(in.overrides)
	}
	if in.activeErr == nil {
		next.active = in.active
	}
	next.merged = servers.Reconcile(next.catalog, next.overrides, next.active)
	next.refreshedAt = time.Now()
	next.generation = gen

	result.Changes = servers.Diff(c.state.merged, next.merged)
	result.Servers = len(next.merged)
	c.state = next
	if !result.Changes.Empty() {
		c.pending = append(c.pending, result.Changes)
	}
	return true, false
}

func nonNil(list []servers.Descriptor) []servers.Descriptor {
	if list == nil {
		return []servers.Descriptor{}
	}
	return list
}
