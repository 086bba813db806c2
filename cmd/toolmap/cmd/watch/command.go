// Package watch implements the watch command: a long running view that
// keeps sessions open to selected servers and prints every change to the
// reconciled server list until interrupted.
package watch

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/internal/appcontext"
	"github.com/agentstation/toolmap/internal/cmd/emoji"
	"github.com/agentstation/toolmap/internal/sessions"
	"github.com/agentstation/toolmap/pkg/constants"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

type options struct {
	interval time.Duration
	connect  []string
	dialer   sessions.Dialer
}

// NewCommand creates the watch command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return newCommand(app, nil)
}

func newCommand(app appcontext.Interface, dialer sessions.Dialer) *cobra.Command {
	opts := &options{dialer: dialer}

	cmd := &cobra.Command{
		Use:     "watch",
		GroupID: "core",
		Short:   "Watch the server list for changes",
		Long: `Watch refreshes the server list on an interval and prints each server
that is added, updated or removed. Servers named with --connect are
started and kept connected, so their active state follows the live
session. Active state is tracked for servers defined in your overrides.

Press Ctrl+C to stop.`,
		Example: `  toolmap watch
  toolmap watch --interval 10s
  toolmap watch --connect filesystem,time`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, opts)
		},
	}

	cmd.Flags().DurationVar(&opts.interval, "interval", 0, "refresh interval (default from config)")
	cmd.Flags().StringSliceVar(&opts.connect, "connect", nil, "servers to connect to (comma separated)")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, opts *options) error {
	interval := opts.interval
	if interval == 0 {
		interval = app.AutoUpdateInterval()
	}
	if interval < constants.MinAutoUpdateInterval {
		return &errors.ValidationError{
			Field:   "interval",
			Value:   interval,
			Message: fmt.Sprintf("must be at least %s", constants.MinAutoUpdateInterval),
		}
	}

	connect := opts.connect
	if len(connect) == 0 {
		connect = app.ConnectKeys()
	}

	ctx := cmd.Context()
	logger := app.Logger()

	// Session changes ask for a refresh; a pending request absorbs the rest
	kick := make(chan struct{}, 1)
	managerOpts := []sessions.Option{
		sessions.WithLogger(logger),
		sessions.WithOnChange(func(string, bool) {
			select {
			case kick <- struct{}{}:
			default:
			}
		}),
	}
	if opts.dialer != nil {
		managerOpts = append(managerOpts, sessions.WithDialer(opts.dialer))
	}
	manager := sessions.NewManager(managerOpts...)
	defer func() {
		if err := manager.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close sessions")
		}
	}()

	client, err := app.ClientWithOptions(
		toolmap.WithActiveSource(manager),
		toolmap.WithAutoUpdates(true),
		toolmap.WithAutoUpdateInterval(interval),
	)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Warn().Err(err).Msg("Failed to close client")
		}
	}()

	p := &printer{w: cmd.OutOrStdout()}
	client.OnServerAdded(func(d servers.Descriptor) { p.event(emoji.Added, "added", d, "") })
	client.OnServerUpdated(func(prev, next servers.Descriptor) {
		p.event(emoji.Updated, "updated", next, activity(prev, next))
	})
	client.OnServerRemoved(func(d servers.Descriptor) { p.event(emoji.Removed, "removed", d, "") })

	list := client.Servers()
	p.printf("Watching %d servers, refreshing every %s\n", len(list), interval)

	for _, key := range connect {
		d, ok := servers.Find(list, key)
		if !ok {
			logger.Warn().Str("server", key).Msg("Unknown server; not connecting")
			continue
		}
		if err := manager.Connect(ctx, d); err != nil {
			logger.Warn().Err(err).Str("server", key).Msg("Connect failed")
		}
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-kick:
			if result := client.Refresh(ctx); result.Failed() {
				logger.Debug().Str("request_id", result.RequestID).Msg("Refresh after session change had failures")
			}
		}
	}
}

func activity(prev, next servers.Descriptor) string {
	switch {
	case !prev.IsActive && next.IsActive:
		return "active"
	case prev.IsActive && !next.IsActive:
		return "inactive"
	}
	return ""
}

// printer serializes event lines; hooks fire from refresh goroutines.
type printer struct {
	mu sync.Mutex
	w  io.Writer
}

func (p *printer) printf(format string, args ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.w, format, args...)
}

func (p *printer) event(symbol, kind string, d servers.Descriptor, note string) {
	if note != "" {
		p.printf("%s %-8s %s (%s)\n", symbol, kind, d.Key, note)
		return
	}
	p.printf("%s %-8s %s\n", symbol, kind, d.Key)
}
