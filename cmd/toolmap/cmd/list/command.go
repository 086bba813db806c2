// Package list implements the list command.
package list

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap"
	"github.com/agentstation/toolmap/internal/appcontext"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/internal/matcher"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

type options struct {
	search     string
	activeOnly bool
	force      bool
}

// NewCommand creates the list command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		GroupID: "core",
		Short:   "List MCP servers",
		Long: `List shows the reconciled server list: the builtin catalog with your
own server definitions applied on top. Servers you define replace catalog
servers with the same key and are marked active when running.`,
		Example: `  toolmap list                    # All servers
  toolmap list --search git       # Key, name, description or tag contains "git"
  toolmap list --search '^file'   # Regular expression
  toolmap list --active -o json   # Active servers as JSON
  toolmap list --force            # Reload the catalog, bypassing its cache`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.search, "search", "s", "", "filter by glob, regex or substring")
	cmd.Flags().BoolVar(&opts.activeOnly, "active", false, "only show active servers")
	cmd.Flags().BoolVar(&opts.force, "force", false, "reload the builtin catalog before listing")

	return cmd
}

func run(cmd *cobra.Command, app appcontext.Interface, opts *options) error {
	format, err := output.ParseFormat(app.OutputFormat())
	if err != nil {
		return err
	}

	client, err := app.Client()
	if err != nil {
		return err
	}

	if opts.force {
		result := client.Refresh(cmd.Context(), toolmap.WithForce(true))
		if err := cmd.Context().Err(); err != nil {
			return err
		}
		app.Logger().Debug().
			Str("request_id", result.RequestID).
			Bool("committed", result.Committed).
			Msg("Forced refresh finished")
	}

	list := client.Servers()

	if opts.search != "" {
		m, err := matcher.New(matcher.Auto, opts.search)
		if err != nil {
			return &errors.ValidationError{Field: "search", Value: opts.search, Message: err.Error()}
		}
		list = m.Filter(list)
	}

	if opts.activeOnly {
		list = activeOnly(list)
	}

	app.Logger().Debug().Int("servers", len(list)).Msg("Listing servers")
	return output.FormatServers(cmd.OutOrStdout(), list, format)
}

func activeOnly(list []servers.Descriptor) []servers.Descriptor {
	out := make([]servers.Descriptor, 0, len(list))
	for _, d := range list {
		if d.IsActive {
			out = append(out, d)
		}
	}
	return out
}
