package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gamehost/cmd/gamehost/handlers"
)

// Provision returns the command that creates or updates the game server.
//
// Environment variables:
//
//	HCLOUD_TOKEN: Hetzner Cloud API token (hcloud only)
//	S3_ACCESS_KEY, S3_SECRET_KEY: object storage keys
func Provision() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Create or update the game server",
		Long: `Create or update the game server and everything it needs.

Provisioning binds the network, creates or reuses the save data bucket,
uploads the bootstrap script and page template, opens the game port and
creates the server. Re-running with an unchanged configuration changes
nothing; a changed configuration replaces the server. Save data stays in
the bucket.

Examples:
  # Provision using gamehost.yaml in the current directory
  gamehost provision

  # Provision a second deployment
  gamehost provision -c staging.yaml`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), configPath)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", handlers.DefaultConfigFile, "Path to configuration file")

	return cmd
}
