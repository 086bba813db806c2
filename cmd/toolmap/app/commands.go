package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/toolmap/cmd/toolmap/cmd/list"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/show"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/validate"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/version"
	"github.com/agentstation/toolmap/cmd/toolmap/cmd/watch"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(list.NewCommand(a))
	rootCmd.AddCommand(show.NewCommand(a))
	rootCmd.AddCommand(watch.NewCommand(a))

	// Management commands
	rootCmd.AddCommand(validate.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(version.NewCommand(a))
}
