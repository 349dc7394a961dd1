package commands

import (
	"github.com/spf13/cobra"

	"github.com/imamik/gamehost/cmd/gamehost/handlers"
)

// Init returns the command for interactively creating a configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "gamehost.yaml")
//	--advanced, -a: Ask for network placement
func Init() *cobra.Command {
	var (
		outputPath string
		advanced   bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a deployment configuration",
		Long: `Interactively create a deployment configuration file.

The wizard asks for:

  - Provider (aws or hcloud)
  - Deployment prefix and region
  - Machine image and instance type
  - Game options (experimental build, start endpoint)

Use --advanced to pin the server to an existing network or subnet.

Secrets are never written to the file; export HCLOUD_TOKEN,
S3_ACCESS_KEY and S3_SECRET_KEY instead.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath, advanced)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", handlers.DefaultConfigFile, "Output file path")
	cmd.Flags().BoolVarP(&advanced, "advanced", "a", false, "Ask for network placement options")

	return cmd
}
