package config

// Supported providers.
const (
	ProviderAWS    = "aws"
	ProviderHCloud = "hcloud"
)

// Config holds the provisioning configuration of one deployment.
type Config struct {
	// Prefix names every resource of the deployment.
	// Default: "SatisfactoryHosting"
	Prefix string `mapstructure:"prefix" yaml:"prefix"`

	// Provider is "aws" or "hcloud". Default: "aws"
	Provider string `mapstructure:"provider" yaml:"provider"`

	// Region is an AWS region (eu-west-1) or a Hetzner location (fsn1).
	Region string `mapstructure:"region" yaml:"region"`

	// Image is an AMI id on aws and an image name on hcloud.
	// It must be an amd64 Ubuntu image.
	Image string `mapstructure:"image" yaml:"image"`

	// InstanceType is the machine size, e.g. m6a.xlarge or ccx23.
	InstanceType string `mapstructure:"instance_type" yaml:"instance_type"`

	// InstanceProfile is the IAM instance profile granting the instance
	// access to the save data bucket (aws only).
	InstanceProfile string `mapstructure:"instance_profile" yaml:"instance_profile"`

	// RestartAPI exposes the on-demand start endpoint.
	// Default: true
	RestartAPI *bool `mapstructure:"restart_api" yaml:"restart_api"`

	// UseExperimentalBuild installs the experimental game channel.
	UseExperimentalBuild bool `mapstructure:"use_experimental_build" yaml:"use_experimental_build"`

	Network   NetworkConfig   `mapstructure:"network" yaml:"network"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	Bootstrap BootstrapConfig `mapstructure:"bootstrap" yaml:"bootstrap"`

	// HCloudToken is read from HCLOUD_TOKEN when empty.
	HCloudToken string `mapstructure:"hcloud_token" yaml:"hcloud_token,omitempty"`

	// StateDir holds the deployment record and runtime env file.
	// Default: ".gamehost"
	StateDir string `mapstructure:"state_dir" yaml:"state_dir,omitempty"`
}

// NetworkConfig selects the network placement. All fields are optional.
type NetworkConfig struct {
	// ID of an existing VPC or Hetzner network. Empty uses the default.
	ID string `mapstructure:"id" yaml:"id,omitempty"`

	// SubnetID pins the instance to a subnet; requires AvailabilityZone.
	SubnetID string `mapstructure:"subnet_id" yaml:"subnet_id,omitempty"`

	// AvailabilityZone of SubnetID (us-west-2a, or a network zone such as
	// eu-central on hcloud).
	AvailabilityZone string `mapstructure:"availability_zone" yaml:"availability_zone,omitempty"`
}

// StorageConfig selects the save data bucket.
type StorageConfig struct {
	// BucketName of an existing bucket. Empty creates a new one.
	BucketName string `mapstructure:"bucket_name" yaml:"bucket_name,omitempty"`

	// Endpoint of an S3-compatible service. Defaults to Hetzner Object
	// Storage of the region on hcloud; empty means Amazon S3.
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint,omitempty"`

	// AccessKey and SecretKey are read from S3_ACCESS_KEY and
	// S3_SECRET_KEY when empty. Required on hcloud.
	AccessKey string `mapstructure:"access_key" yaml:"access_key,omitempty"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key,omitempty"`
}

// BootstrapConfig points at the local assets uploaded by provisioning.
type BootstrapConfig struct {
	// Script is run once on first boot with "<bucket> <true|false>".
	// Default: "assets/install.sh"
	Script string `mapstructure:"script" yaml:"script"`

	// Template is the status page template with {{TITLE}} and {{CONTENT}}.
	// Default: "assets/html-template.html"
	Template string `mapstructure:"template" yaml:"template"`
}

// RestartAPIEnabled reports whether the start endpoint is exposed.
func (c *Config) RestartAPIEnabled() bool {
	return c.RestartAPI == nil || *c.RestartAPI
}

// StorageEndpoint returns the object storage endpoint for the provider.
func (c *Config) StorageEndpoint() string {
	if c.Storage.Endpoint != "" || c.Provider != ProviderHCloud {
		return c.Storage.Endpoint
	}
	return "https://" + c.Region + ".your-objectstorage.com"
}
