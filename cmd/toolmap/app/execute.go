package app

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Execute builds the command tree and runs it with args.
func (a *App) Execute(ctx context.Context, args []string) error {
	root := a.createRootCommand()
	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

func (a *App) createRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:     "toolmap",
		Short:   "MCP server catalog CLI",
		Version: a.version,
		Long: `Toolmap shows the MCP servers available to this machine.

It merges a builtin catalog of well known servers with your own server
definitions (~/.toolmap/servers.yaml) and marks which servers are active.
Your definitions replace catalog entries with the same key.`,
		PersistentPreRunE: a.setupCommand,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	root.AddGroup(
		&cobra.Group{ID: "core", Title: "Core Commands:"},
		&cobra.Group{ID: "management", Title: "Management Commands:"},
	)

	addGlobalFlags(root.PersistentFlags())
	root.SetVersionTemplate("toolmap {{.Version}}\n")

	a.registerCommands(root)
	return root
}

// globalFlags are the persistent flags every command accepts. They are read
// back in setupCommand and layered over the loaded config.
type globalFlags struct {
	config   string
	verbose  bool
	quiet    bool
	noColor  bool
	format   string
	logLevel string
}

func addGlobalFlags(fs *pflag.FlagSet) {
	fs.String("config", "", "config file (default is $HOME/.toolmap.yaml)")
	fs.BoolP("verbose", "v", false, "verbose output (shortcut for --log-level=debug)")
	fs.BoolP("quiet", "q", false, "minimal output (shortcut for --log-level=warn)")
	fs.Bool("no-color", false, "disable colored output")
	fs.StringP("format", "o", "", "output format: table, json, yaml, wide")
	fs.String("log-level", "", "log level: trace, debug, info, warn, error (overrides -v/-q)")
}

func readGlobalFlags(fs *pflag.FlagSet) (globalFlags, error) {
	var (
		g    globalFlags
		errs []error
	)
	str := func(name string, dst *string) {
		v, err := fs.GetString(name)
		errs = append(errs, err)
		*dst = v
	}
	boolean := func(name string, dst *bool) {
		v, err := fs.GetBool(name)
		errs = append(errs, err)
		*dst = v
	}
	str("config", &g.config)
	boolean("verbose", &g.verbose)
	boolean("quiet", &g.quiet)
	boolean("no-color", &g.noColor)
	str("format", &g.format)
	str("log-level", &g.logLevel)

	for _, err := range errs {
		if err != nil {
			return g, fmt.Errorf("reading global flags: %w", err)
		}
	}
	return g, nil
}

// setupCommand reloads config when --config is given, applies the global
// flags and rebuilds the logger before any command runs.
func (a *App) setupCommand(cmd *cobra.Command, _ []string) error {
	flags, err := readGlobalFlags(cmd.Flags())
	if err != nil {
		return err
	}

	if flags.config != "" {
		config, err := LoadConfigFile(flags.config)
		if err != nil {
			return err
		}
		a.config = config
	}

	a.config.UpdateFromFlags(flags.verbose, flags.quiet, flags.noColor, flags.format, flags.logLevel)

	logger := NewLogger(a.config)
	a.logger = &logger
	return nil
}

// ExitOnError prints err and exits with status 1. Nil is a no-op.
func ExitOnError(err error) {
	if err == nil {
		return
	}
	_, _ = fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
