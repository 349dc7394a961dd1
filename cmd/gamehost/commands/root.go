// Package commands defines the CLI command structure and flag bindings.
//
// Command execution is delegated to handler functions in the handlers
// package.
package commands

import "github.com/spf13/cobra"

// Root returns the root command for the gamehost CLI.
func Root() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "gamehost",
		Short:         "Host an on-demand dedicated game server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Provisioning
	cmd.AddCommand(Init())
	cmd.AddCommand(Plan())
	cmd.AddCommand(Provision())

	// Runtime
	cmd.AddCommand(Serve())
	cmd.AddCommand(Start())
	cmd.AddCommand(Stop())
	cmd.AddCommand(Status())

	cmd.AddCommand(Version())

	return cmd
}
