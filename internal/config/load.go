package config

import (
	"fmt"
	"os"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Default values applied by LoadFile.
const (
	DefaultPrefix            = "SatisfactoryHosting"
	DefaultAWSInstanceType   = "m6a.xlarge"
	DefaultHCloudInstance    = "ccx23"
	DefaultHCloudImage       = "ubuntu-24.04"
	DefaultHCloudRegion      = "fsn1"
	DefaultBootstrapScript   = "assets/install.sh"
	DefaultBootstrapTemplate = "assets/html-template.html"
	DefaultStateDir          = ".gamehost"
)

// LoadFile reads and parses the configuration from a YAML file.
func LoadFile(path string) (*Config, error) {
	// #nosec G304
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML, applies defaults and validates.
func Parse(data []byte) (*Config, error) {
	var rawConfig map[string]interface{}
	if err := yaml.Unmarshal(data, &rawConfig); err != nil {
		return nil, fmt.Errorf("failed to unmarshal yaml: %w", err)
	}

	var cfg Config
	if err := mapstructure.Decode(rawConfig, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// ApplyDefaults fills unset fields, including secrets from the environment.
func (c *Config) ApplyDefaults() {
	if c.Prefix == "" {
		c.Prefix = DefaultPrefix
	}
	if c.Provider == "" {
		c.Provider = ProviderAWS
	}
	if c.Provider == ProviderHCloud {
		if c.Region == "" {
			c.Region = DefaultHCloudRegion
		}
		if c.Image == "" {
			c.Image = DefaultHCloudImage
		}
		if c.InstanceType == "" {
			c.InstanceType = DefaultHCloudInstance
		}
		if c.HCloudToken == "" {
			c.HCloudToken = os.Getenv("HCLOUD_TOKEN")
		}
	} else if c.InstanceType == "" {
		c.InstanceType = DefaultAWSInstanceType
	}
	if c.Storage.AccessKey == "" {
		c.Storage.AccessKey = os.Getenv("S3_ACCESS_KEY")
	}
	if c.Storage.SecretKey == "" {
		c.Storage.SecretKey = os.Getenv("S3_SECRET_KEY")
	}
	if c.Bootstrap.Script == "" {
		c.Bootstrap.Script = DefaultBootstrapScript
	}
	if c.Bootstrap.Template == "" {
		c.Bootstrap.Template = DefaultBootstrapTemplate
	}
	if c.StateDir == "" {
		c.StateDir = DefaultStateDir
	}
}
