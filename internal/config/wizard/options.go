package wizard

import "github.com/charmbracelet/huh"

// Option is a selectable wizard value.
type Option struct {
	Value       string
	Label       string
	Description string
}

// Providers contains the supported cloud providers.
var Providers = []Option{
	{Value: "aws", Label: "AWS", Description: "EC2 instance with S3 save storage"},
	{Value: "hcloud", Label: "Hetzner Cloud", Description: "Cloud server with Object Storage"},
}

// HCloudLocations contains the Hetzner locations with Object Storage.
var HCloudLocations = []Option{
	{Value: "fsn1", Label: "fsn1", Description: "Falkenstein, Germany"},
	{Value: "nbg1", Label: "nbg1", Description: "Nuremberg, Germany"},
	{Value: "hel1", Label: "hel1", Description: "Helsinki, Finland"},
}

// AWSInstanceTypes contains instance types that run a dedicated server
// comfortably. Larger factories need more memory.
var AWSInstanceTypes = []Option{
	{Value: "m6a.large", Label: "m6a.large", Description: "2 vCPU, 8GB RAM (small maps)"},
	{Value: "m6a.xlarge", Label: "m6a.xlarge", Description: "4 vCPU, 16GB RAM (recommended)"},
	{Value: "m6a.2xlarge", Label: "m6a.2xlarge", Description: "8 vCPU, 32GB RAM (large factories)"},
	{Value: "r6a.xlarge", Label: "r6a.xlarge", Description: "4 vCPU, 32GB RAM (memory optimized)"},
}

// HCloudServerTypes contains Hetzner server types for the game server.
var HCloudServerTypes = []Option{
	{Value: "cpx41", Label: "cpx41", Description: "8 vCPU, 16GB RAM (shared)"},
	{Value: "ccx23", Label: "ccx23", Description: "4 vCPU, 16GB RAM (dedicated, recommended)"},
	{Value: "ccx33", Label: "ccx33", Description: "8 vCPU, 32GB RAM (dedicated)"},
}

// ToOptions converts options to huh select options.
func ToOptions(opts []Option) []huh.Option[string] {
	result := make([]huh.Option[string], len(opts))
	for i, o := range opts {
		result[i] = huh.NewOption(o.Label+" - "+o.Description, o.Value)
	}
	return result
}

// InstanceTypesFor returns the instance type choices of provider.
func InstanceTypesFor(provider string) []Option {
	if provider == "hcloud" {
		return HCloudServerTypes
	}
	return AWSInstanceTypes
}
