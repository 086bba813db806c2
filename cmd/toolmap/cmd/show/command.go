// Package show implements the show command.
package show

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/internal/appcontext"
	"github.com/agentstation/toolmap/internal/cmd/output"
	"github.com/agentstation/toolmap/pkg/errors"
	"github.com/agentstation/toolmap/pkg/servers"
)

// NewCommand creates the show command with app dependencies.
func NewCommand(app appcontext.Interface) *cobra.Command {
	return &cobra.Command{
		Use:     "show <key>",
		GroupID: "core",
		Short:   "Show one MCP server",
		Example: `  toolmap show filesystem
  toolmap show github -o yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(app.OutputFormat())
			if err != nil {
				return err
			}

			client, err := app.Client()
			if err != nil {
				return err
			}

			d, ok := servers.Find(client.Servers(), args[0])
			if !ok {
				return errors.NewNotFoundError("server", args[0])
			}
			return output.FormatServer(cmd.OutOrStdout(), d, format)
		},
	}
}
