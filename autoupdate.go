package toolmap

import (
	"context"
	"time"

	"github.com/agentstation/toolmap/pkg/errors"
)

// Compile-time interface check to ensure proper implementation.
var _ AutoUpdater = (*client)(nil)

// AutoUpdater provides controls for automatic refreshes.
type AutoUpdater interface {
	// AutoUpdatesOn begins refreshing on the configured interval
	AutoUpdatesOn() error

	// AutoUpdatesOff stops automatic refreshes
	AutoUpdatesOff() error
}

// AutoUpdatesOn begins automatic refreshes. Calling it again restarts the
// ticker.
func (c *client) AutoUpdatesOn() error {
	interval := c.options.autoUpdateInterval
	if interval <= 0 {
		return &errors.ValidationError{
			Field:   "autoUpdateInterval",
			Value:   interval,
			Message: "update interval must be positive",
		}
	}

	// Stop any existing auto-updates to prevent resource leaks
	if err := c.AutoUpdatesOff(); err != nil {
		return err
	}

	c.autoMu.Lock()
	defer c.autoMu.Unlock()

	// a concurrent AutoUpdatesOn may have started a loop since
	if c.updateCancel != nil {
		c.updateTicker.Stop()
		c.updateCancel()
		close(c.stopCh)
	}

	c.stopCh = make(chan struct{})
	c.updateDone = make(chan struct{})
	c.updateTicker = time.NewTicker(interval)

	// Create a cancellable context for the update goroutine
	ctx, cancel := context.WithCancel(context.Background())
	c.updateCancel = cancel

	go c.autoUpdateLoop(ctx, c.updateTicker, c.stopCh, c.updateDone)

	c.logger().Debug().Dur("interval", interval).Msg("Auto-updates on")
	return nil
}

func (c *client) autoUpdateLoop(parentCtx context.Context, ticker *time.Ticker, stopCh <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	for {
		select {
		case <-ticker.C:
			result := c.Refresh(parentCtx)
			if parentCtx.Err() != nil {
				return
			}
			if result.Superseded {
				c.logger().Debug().Str("request_id", result.RequestID).Msg("Auto-update superseded by a newer refresh")
				continue
			}
			if err := result.Err(); err != nil {
				c.logger().Warn().Err(err).Str("request_id", result.RequestID).Msg("Auto-update failed")
			}
		case <-parentCtx.Done():
			return
		case <-stopCh:
			return
		}
	}
}

// AutoUpdatesOff stops automatic refreshes and waits for the loop to exit.
// A refresh started by the loop is cancelled. It must not be called from a
// hook, since hooks run on the loop goroutine.
func (c *client) AutoUpdatesOff() error {
	c.autoMu.Lock()
	if c.updateTicker != nil {
		c.updateTicker.Stop()
		c.updateTicker = nil
	}
	if c.updateCancel != nil {
		c.updateCancel()
		c.updateCancel = nil
	}
	select {
	case <-c.stopCh:
		// Already closed
	default:
		close(c.stopCh)
	}
	done := c.updateDone
	c.updateDone = nil
	c.autoMu.Unlock()

	if done != nil {
		<-done
	}
	return nil
}
