package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/gamehost/internal/config"
)

func TestBuildConfig(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		Provider:             "aws",
		Prefix:               " Factory ",
		Region:               "eu-west-1",
		Image:                "ami-074d4131321dc4f06",
		InstanceType:         "m6a.xlarge",
		RestartAPI:           false,
		UseExperimentalBuild: true,
		BucketName:           "my-saves",
	}

	cfg := BuildConfig(result)

	assert.Equal(t, "Factory", cfg.Prefix)
	assert.Equal(t, "aws", cfg.Provider)
	assert.Equal(t, "eu-west-1", cfg.Region)
	assert.Equal(t, "ami-074d4131321dc4f06", cfg.Image)
	require.NotNil(t, cfg.RestartAPI)
	assert.False(t, cfg.RestartAPIEnabled())
	assert.True(t, cfg.UseExperimentalBuild)
	assert.Equal(t, "my-saves", cfg.Storage.BucketName)
	assert.Equal(t, config.NetworkConfig{}, cfg.Network)
}

func TestBuildConfig_AdvancedOptions(t *testing.T) {
	t.Parallel()
	result := &WizardResult{
		Provider:   "aws",
		Prefix:     "Factory",
		RestartAPI: true,
		AdvancedOptions: &AdvancedOptions{
			NetworkID:        "vpc-1",
			SubnetID:         "subnet-1",
			AvailabilityZone: "eu-west-1a",
			InstanceProfile:  "factory",
		},
	}

	cfg := BuildConfig(result)

	assert.Equal(t, config.NetworkConfig{ID: "vpc-1", SubnetID: "subnet-1", AvailabilityZone: "eu-west-1a"}, cfg.Network)
	assert.Equal(t, "factory", cfg.InstanceProfile)
	assert.True(t, cfg.RestartAPIEnabled())
}

func TestValidators(t *testing.T) {
	t.Parallel()

	assert.NoError(t, validatePrefix("SatisfactoryHosting"))
	assert.ErrorIs(t, validatePrefix("9lives"), errPrefixInvalid)
	assert.ErrorIs(t, validatePrefix(""), errPrefixInvalid)

	assert.ErrorIs(t, validateRequired(errRegionRequired)("  "), errRegionRequired)
	assert.NoError(t, validateRequired(errRegionRequired)("eu-west-1"))

	assert.NoError(t, validateSubnetZone("", ""))
	assert.NoError(t, validateSubnetZone("subnet-1", "eu-west-1a"))
	assert.ErrorIs(t, validateSubnetZone("subnet-1", ""), errSubnetNeedsZone)
}

func TestInstanceTypesFor(t *testing.T) {
	t.Parallel()
	assert.Equal(t, HCloudServerTypes, InstanceTypesFor("hcloud"))
	assert.Equal(t, AWSInstanceTypes, InstanceTypesFor("aws"))
	assert.Equal(t, "m6a.xlarge", AWSInstanceTypes[1].Value)
	assert.Equal(t, "ccx23", HCloudServerTypes[1].Value)
	assert.Len(t, ToOptions(Providers), 2)
}
