package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gamehost/cmd/gamehost/handlers"
)

// Start returns the command that starts the provisioned server.
func Start() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the game server and print its address",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Start(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigFile, "Path to configuration file")

	return cmd
}

// Stop returns the command that stops the provisioned server.
func Stop() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the game server",
		Long: `Stop the game server. Save data on the volume and in the bucket is kept;
the server can be started again with 'gamehost start' or the endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Stop(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigFile, "Path to configuration file")

	return cmd
}

// Status returns the command that describes the provisioned server.
func Status() *cobra.Command {
	var (
		configPath string
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state and address of the game server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigFile, "Path to configuration file")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the raw provider description as JSON")

	return cmd
}
