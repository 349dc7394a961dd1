package config

import (
	"fmt"
	"regexp"
)

// ValidLocations contains the Hetzner Cloud locations that also offer
// Object Storage.
// https://docs.hetzner.com/storage/object-storage/overview
var ValidLocations = map[string]bool{
	"nbg1": true, // Nuremberg, Germany
	"fsn1": true, // Falkenstein, Germany
	"hel1": true, // Helsinki, Finland
}

var (
	prefixRegex    = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9-]{0,31}$`)
	awsRegionRegex = regexp.MustCompile(`^[a-z]{2}(-gov)?-[a-z]+-\d$`)
)

// Validate checks the configuration for common errors and returns a
// detailed error if validation fails.
func (c *Config) Validate() error {
	if !prefixRegex.MatchString(c.Prefix) {
		return fmt.Errorf("prefix %q must be 1-32 alphanumeric characters or hyphens, starting with a letter", c.Prefix)
	}
	if c.Region == "" {
		return fmt.Errorf("region is required")
	}
	if c.Image == "" {
		return fmt.Errorf("image is required")
	}
	if c.InstanceType == "" {
		return fmt.Errorf("instance_type is required")
	}

	switch c.Provider {
	case ProviderAWS:
		return c.validateAWS()
	case ProviderHCloud:
		return c.validateHCloud()
	default:
		return fmt.Errorf("provider %q is not supported (use %q or %q)", c.Provider, ProviderAWS, ProviderHCloud)
	}
}

func (c *Config) validateAWS() error {
	if !awsRegionRegex.MatchString(c.Region) {
		return fmt.Errorf("invalid aws region %q", c.Region)
	}
	return nil
}

func (c *Config) validateHCloud() error {
	if !ValidLocations[c.Region] {
		return fmt.Errorf("invalid location %q for hcloud (object storage is available in nbg1, fsn1, hel1)", c.Region)
	}
	if c.HCloudToken == "" {
		return fmt.Errorf("hcloud_token is required (or set HCLOUD_TOKEN)")
	}
	if c.Storage.AccessKey == "" || c.Storage.SecretKey == "" {
		return fmt.Errorf("storage access_key and secret_key are required for hcloud (or set S3_ACCESS_KEY and S3_SECRET_KEY)")
	}
	if c.InstanceProfile != "" {
		return fmt.Errorf("instance_profile is only supported on aws")
	}
	return nil
}
