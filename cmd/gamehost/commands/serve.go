package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gamehost/cmd/gamehost/handlers"
)

// Serve returns the command that runs the start endpoint.
//
// All settings come from the environment, see config.Runtime. The file
// written by provision can be sourced directly.
func Serve() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the HTTP endpoint that starts the game server",
		Long: `Serve the HTTP endpoint that starts the game server.

Every GET on / or /start starts the server, waits briefly and answers with
a page showing its address. The endpoint reads its settings from the
environment:

  INSTANCE_ID                   server to start (required)
  PROVIDER                      aws or hcloud (default aws)
  AWS_REGION                    region of the server
  HTML_TEMPLATE_S3_BUCKET/KEY   page template location
  HTML_TEMPLATE_FILE            page template on disk instead
  HCLOUD_TOKEN                  Hetzner Cloud API token
  LISTEN_ADDR                   listen address (default :8080)
  GAMEHOST_OTEL_ENDPOINT        OTLP/HTTP endpoint for traces`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Serve(cmd.Context())
		},
	}
}
