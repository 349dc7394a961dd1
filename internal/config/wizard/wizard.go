package wizard

import (
	"context"
	"fmt"
)

// WizardResult holds all the answers from the interactive wizard.
type WizardResult struct {
	Provider     string
	Prefix       string
	Region       string
	Image        string
	InstanceType string

	RestartAPI           bool
	UseExperimentalBuild bool

	// Optional existing storage; empty creates a bucket.
	BucketName string

	// Advanced options (only set in advanced mode)
	AdvancedOptions *AdvancedOptions
}

// AdvancedOptions holds network placement and instance identity settings.
type AdvancedOptions struct {
	NetworkID        string
	SubnetID         string
	AvailabilityZone string
	InstanceProfile  string
}

// RunWizard runs the interactive configuration wizard.
// If advanced is true, network placement options are shown.
// The context is used for cancellation support (e.g., Ctrl+C).
func RunWizard(ctx context.Context, advanced bool) (*WizardResult, error) {
	result := &WizardResult{RestartAPI: true}

	if err := runProviderGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("provider: %w", err)
	}

	if err := runIdentityGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("identity: %w", err)
	}

	if err := runMachineGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("machine: %w", err)
	}

	if err := runGameGroup(ctx, result); err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}

	if advanced {
		advOpts := &AdvancedOptions{}
		if err := runNetworkGroup(ctx, result.Provider, advOpts); err != nil {
			return nil, fmt.Errorf("network: %w", err)
		}
		result.AdvancedOptions = advOpts
	}

	return result, nil
}
