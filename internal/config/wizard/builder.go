package wizard

import (
	"strings"

	"github.com/imamik/gamehost/internal/config"
)

// BuildConfig creates a Config struct from the wizard result.
func BuildConfig(result *WizardResult) *config.Config {
	cfg := &config.Config{
		Prefix:               strings.TrimSpace(result.Prefix),
		Provider:             result.Provider,
		Region:               strings.TrimSpace(result.Region),
		Image:                strings.TrimSpace(result.Image),
		InstanceType:         result.InstanceType,
		RestartAPI:           boolPtr(result.RestartAPI),
		UseExperimentalBuild: result.UseExperimentalBuild,
		Storage: config.StorageConfig{
			BucketName: strings.TrimSpace(result.BucketName),
		},
	}

	if result.AdvancedOptions != nil {
		applyAdvancedOptions(cfg, result.AdvancedOptions)
	}

	return cfg
}

// applyAdvancedOptions applies advanced options to the config.
func applyAdvancedOptions(cfg *config.Config, opts *AdvancedOptions) {
	cfg.Network = config.NetworkConfig{
		ID:               strings.TrimSpace(opts.NetworkID),
		SubnetID:         strings.TrimSpace(opts.SubnetID),
		AvailabilityZone: strings.TrimSpace(opts.AvailabilityZone),
	}
	cfg.InstanceProfile = strings.TrimSpace(opts.InstanceProfile)
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}
