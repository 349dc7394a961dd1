package wizard

import (
	"context"
	"regexp"
	"strings"

	"github.com/charmbracelet/huh"
)

// prefixRegex matches config.Validate.
var prefixRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,31}$`)

// runProviderGroup prompts for the cloud provider.
func runProviderGroup(ctx context.Context, result *WizardResult) error {
	result.Provider = "aws"
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Cloud Provider").
				Options(ToOptions(Providers)...).
				Value(&result.Provider),
		).Title("Provider"),
	).RunWithContext(ctx)
}

// runIdentityGroup prompts for the resource prefix and region.
func runIdentityGroup(ctx context.Context, result *WizardResult) error {
	result.Prefix = "SatisfactoryHosting"

	prefix := huh.NewInput().
		Title("Prefix").
		Description("Names every resource of this deployment").
		Value(&result.Prefix).
		Validate(validatePrefix)

	var region huh.Field
	if result.Provider == "hcloud" {
		result.Region = "fsn1"
		region = huh.NewSelect[string]().
			Title("Location").
			Description("Hetzner location with Object Storage").
			Options(ToOptions(HCloudLocations)...).
			Value(&result.Region)
	} else {
		region = huh.NewInput().
			Title("Region").
			Description("AWS region closest to your players").
			Placeholder("eu-west-1").
			Value(&result.Region).
			Validate(validateRequired(errRegionRequired))
	}

	return huh.NewForm(huh.NewGroup(prefix, region).Title("Deployment")).RunWithContext(ctx)
}

// runMachineGroup prompts for image and instance type.
func runMachineGroup(ctx context.Context, result *WizardResult) error {
	types := InstanceTypesFor(result.Provider)
	result.InstanceType = types[1].Value

	instance := huh.NewSelect[string]().
		Title("Instance Type").
		Options(ToOptions(types)...).
		Value(&result.InstanceType)

	if result.Provider == "hcloud" {
		result.Image = "ubuntu-24.04"
		return huh.NewForm(huh.NewGroup(instance).Title("Machine")).RunWithContext(ctx)
	}

	image := huh.NewInput().
		Title("Machine Image").
		Description("amd64 Ubuntu AMI id, see https://cloud-images.ubuntu.com/locator/ec2/").
		Placeholder("ami-074d4131321dc4f06").
		Value(&result.Image).
		Validate(validateRequired(errImageRequired))

	return huh.NewForm(huh.NewGroup(image, instance).Title("Machine")).RunWithContext(ctx)
}

// runGameGroup prompts for start endpoint, build channel and storage.
func runGameGroup(ctx context.Context, result *WizardResult) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Start Endpoint").
				Description("Expose an HTTP endpoint that starts the server on demand").
				Value(&result.RestartAPI),
			huh.NewConfirm().
				Title("Experimental Build").
				Description("Install the experimental game channel").
				Value(&result.UseExperimentalBuild),
			huh.NewInput().
				Title("Existing Save Bucket (Optional)").
				Description("Leave empty to create a new bucket").
				Value(&result.BucketName),
		).Title("Game Server"),
	).RunWithContext(ctx)
}

// runNetworkGroup prompts for network placement.
func runNetworkGroup(ctx context.Context, provider string, opts *AdvancedOptions) error {
	fields := []huh.Field{
		huh.NewInput().
			Title("Network ID (Optional)").
			Description("Existing VPC or network. Leave empty for the default network").
			Value(&opts.NetworkID),
		huh.NewInput().
			Title("Subnet ID (Optional)").
			Description("Leave empty for automatic placement").
			Value(&opts.SubnetID),
		huh.NewInput().
			Title("Availability Zone").
			Description("Required when a subnet is set").
			Value(&opts.AvailabilityZone).
			Validate(func(s string) error {
				return validateSubnetZone(opts.SubnetID, s)
			}),
	}
	if provider != "hcloud" {
		fields = append(fields, huh.NewInput().
			Title("Instance Profile (Optional)").
			Description("IAM instance profile with access to the save bucket").
			Value(&opts.InstanceProfile))
	}
	return huh.NewForm(huh.NewGroup(fields...).Title("Network")).RunWithContext(ctx)
}

func validatePrefix(s string) error {
	if !prefixRegex.MatchString(strings.TrimSpace(s)) {
		return errPrefixInvalid
	}
	return nil
}

func validateRequired(err error) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return err
		}
		return nil
	}
}

func validateSubnetZone(subnetID, zone string) error {
	if strings.TrimSpace(subnetID) != "" && strings.TrimSpace(zone) == "" {
		return errSubnetNeedsZone
	}
	return nil
}
