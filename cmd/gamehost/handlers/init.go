package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/config/wizard"
)

// Factory function variables for init - can be replaced in tests.
var (
	// isInteractive reports whether stdin is a terminal.
	isInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	fileExists       = wizard.FileExists
	confirmOverwrite = wizard.ConfirmOverwrite
	runWizard        = wizard.RunWizard
	writeConfig      = wizard.WriteConfig
)

// Init runs the configuration wizard and writes the result to outputPath.
func Init(ctx context.Context, outputPath string, advanced bool) error {
	if !isInteractive() {
		return fmt.Errorf("init needs an interactive terminal; write %s by hand instead", outputPath)
	}

	if fileExists(outputPath) {
		ok, err := confirmOverwrite(outputPath)
		if err != nil {
			return fmt.Errorf("failed to confirm overwrite: %w", err)
		}
		if !ok {
			fmt.Fprintln(stdout, "Aborted.")
			return nil
		}
	}

	result, err := runWizard(ctx, advanced)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	cfg := wizard.BuildConfig(result)
	if err := writeConfig(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(stdout, outputPath, cfg)
	return nil
}

func printInitSuccess(w io.Writer, outputPath string, cfg *config.Config) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Configuration saved!")
	fmt.Fprintf(w, "  File: %s\n", outputPath)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Next Steps")
	fmt.Fprintln(w, "----------")
	step := 1
	if cfg.Provider == config.ProviderHCloud {
		fmt.Fprintf(w, "  %d. Set your Hetzner Cloud API token:\n", step)
		fmt.Fprintln(w, "     export HCLOUD_TOKEN=<your-token>")
		step++
	}
	if cfg.Provider == config.ProviderHCloud || cfg.InstanceProfile == "" {
		fmt.Fprintf(w, "  %d. Set your object storage keys:\n", step)
		fmt.Fprintln(w, "     export S3_ACCESS_KEY=<key> S3_SECRET_KEY=<secret>")
		step++
	}
	fmt.Fprintf(w, "  %d. Review the plan:\n", step)
	fmt.Fprintf(w, "     gamehost plan -c %s\n", outputPath)
	step++
	fmt.Fprintf(w, "  %d. Create the server:\n", step)
	fmt.Fprintf(w, "     gamehost provision -c %s\n", outputPath)
	fmt.Fprintln(w)
}
