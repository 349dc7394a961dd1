// Package planner combines resolved placement and storage with the operator
// inputs into a single immutable InstanceSpec.
//
// Plan is pure: it performs no provider calls. The game protocol fixes the
// exposed ports and the save volume size, so neither is an input.
package planner

import (
	"errors"
	"fmt"
	"maps"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/storage"
	"github.com/imamik/gamehost/internal/util/naming"
)

// ErrInvalidInput is returned when a required planning input is missing.
var ErrInvalidInput = errors.New("invalid plan input")

// Input holds everything the planner needs.
type Input struct {
	Prefix                 string
	Provider               string
	Region                 string
	ImageID                string
	InstanceSize           string
	InstanceProfile        string
	Placement              placement.Spec
	Storage                storage.Handle
	UseExperimentalChannel bool
	RestartAPIEnabled      bool
	Bootstrap              BootstrapSource
	Labels                 map[string]string
}

// Plan builds the instance spec.
func Plan(in Input) (*InstanceSpec, error) {
	if err := validate(in); err != nil {
		return nil, err
	}

	args := BootstrapArgs{
		StorageName:            in.Storage.Name,
		UseExperimentalChannel: in.UseExperimentalChannel,
	}

	return &InstanceSpec{
		Name:            InstanceName(in.Prefix),
		Provider:        in.Provider,
		Region:          in.Region,
		ImageID:         in.ImageID,
		InstanceSize:    in.InstanceSize,
		InstanceProfile: in.InstanceProfile,
		VolumeSizeGiB:   VolumeSizeGiB,
		VolumeDevice:    VolumeDevice,
		Placement:       in.Placement,
		Storage:         in.Storage,
		SecurityRules:   GameSecurityRules(in.Provider),
		BootstrapArgs:   args,
		Bootstrap:       in.Bootstrap,
		UserData:        renderUserData(in.Region, in.Bootstrap, args),
		StartEndpoint:   in.RestartAPIEnabled,
		Labels:          maps.Clone(in.Labels),
	}, nil
}

// InstanceName derives the instance name from the deployment prefix.
func InstanceName(prefix string) string {
	return naming.Instance(prefix)
}

// GameSecurityRules opens the game port on TCP and UDP to everyone.
func GameSecurityRules(provider string) []SecurityRule {
	sources := []string{"0.0.0.0/0"}
	if provider == "hcloud" {
		sources = append(sources, "::/0")
	}
	return []SecurityRule{
		{Protocol: ProtocolTCP, Port: GamePort, Sources: sources, Description: "Game port TCP"},
		{Protocol: ProtocolUDP, Port: GamePort, Sources: sources, Description: "Game port UDP"},
	}
}

func renderUserData(region string, src BootstrapSource, args BootstrapArgs) string {
	ud := NewLinuxUserData()
	ud.AddCLIInstall()
	if src.AccessKey != "" && src.SecretKey != "" {
		ud.AddCredentials(src.AccessKey, src.SecretKey)
	}
	if src.Endpoint != "" {
		ud.AddEndpoint(src.Endpoint)
	}
	script := ud.AddS3DownloadCommand(src, region)
	ud.AddExecuteFileCommand(script, args)
	return ud.Render()
}

func validate(in Input) error {
	missing := func(field string) error {
		return fmt.Errorf("%w: %s is required", ErrInvalidInput, field)
	}
	switch {
	case in.Region == "":
		return missing("region")
	case in.ImageID == "":
		return missing("image")
	case in.InstanceSize == "":
		return missing("instance size")
	case in.Storage.Name == "":
		return missing("storage name")
	case in.Bootstrap.Bucket == "" || in.Bootstrap.Key == "":
		return missing("bootstrap script location")
	case in.Placement.Subnets == nil:
		return missing("placement")
	}
	return nil
}
