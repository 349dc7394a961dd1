package wizard

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/imamik/gamehost/internal/config"
)

// Function variable for dependency injection in tests.
var confirmOverwrite = defaultConfirmOverwrite

// WriteConfig writes the config to a YAML file with a descriptive header.
// Secrets are never written; they are read from the environment.
func WriteConfig(cfg *config.Config, outputPath string) error {
	out := *cfg
	out.HCloudToken = ""
	out.Storage.AccessKey = ""
	out.Storage.SecretKey = ""

	yamlBytes, err := yaml.Marshal(&out)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString(generateHeader(outputPath, cfg.Provider))
	sb.WriteString("\n")
	sb.Write(yamlBytes)

	if err := os.WriteFile(outputPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// generateHeader creates the YAML file header comment.
func generateHeader(outputPath, provider string) string {
	env := "#   AWS credentials via the default chain (AWS_PROFILE, AWS_ACCESS_KEY_ID, ...)"
	if provider == config.ProviderHCloud {
		env = "#   HCLOUD_TOKEN - Your Hetzner Cloud API token\n" +
			"#   S3_ACCESS_KEY, S3_SECRET_KEY - Hetzner Object Storage credentials"
	}
	return fmt.Sprintf(`# gamehost configuration
# Generated by: gamehost init
# Generated at: %s
#
# Required environment:
%s
#
# Usage:
#   gamehost plan -c %s
#   gamehost provision -c %s
`, time.Now().Format(time.RFC3339), env, outputPath, outputPath)
}

// FileExists checks if a file exists at the given path.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ConfirmOverwrite prompts the user to confirm overwriting an existing file.
func ConfirmOverwrite(path string) (bool, error) {
	return confirmOverwrite(path)
}

// defaultConfirmOverwrite is the default implementation that prompts via stdin.
func defaultConfirmOverwrite(path string) (bool, error) {
	fmt.Printf("\nFile already exists: %s\n", path)
	fmt.Print("Overwrite? (y/n): ")

	var response string
	if _, err := fmt.Scanln(&response); err != nil {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes", nil
}
