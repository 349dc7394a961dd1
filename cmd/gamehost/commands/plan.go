package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gamehost/cmd/gamehost/handlers"
)

// Plan returns the command that prints the instance plan.
func Plan() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Show the server that provision would create",
		Long: `Resolve the network placement and the save data bucket, then print the
instance plan without creating anything.

When no bucket exists yet, the plan shows a generated name; provision
creates the bucket under a freshly generated name.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Plan(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigFile, "Path to configuration file")

	return cmd
}
