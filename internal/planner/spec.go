package planner

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strconv"

	"github.com/kballard/go-shellquote"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/storage"
)

// Fixed exposure and disk layout of the game server.
const (
	// GamePort is used by the game protocol on both TCP and UDP.
	GamePort = 7777

	// VolumeSizeGiB is the size of the save data volume. Not configurable.
	VolumeSizeGiB = 15

	// VolumeDevice is the block device the volume is attached as on aws.
	VolumeDevice = "/dev/sda1"
)

// Protocol is a transport protocol for a security rule.
type Protocol string

// Supported protocols.
const (
	ProtocolTCP Protocol = "tcp"
	ProtocolUDP Protocol = "udp"
)

// SecurityRule allows inbound traffic on one port.
type SecurityRule struct {
	Protocol    Protocol
	Port        int
	Sources     []string
	Description string
}

// BootstrapArgs are the two positional arguments handed to the bootstrap
// routine, in this order.
type BootstrapArgs struct {
	StorageName            string
	UseExperimentalChannel bool
}

// Args returns the arguments as a slice.
func (a BootstrapArgs) Args() []string {
	return []string{a.StorageName, strconv.FormatBool(a.UseExperimentalChannel)}
}

// String returns the arguments as they appear on the command line.
func (a BootstrapArgs) String() string {
	return shellquote.Join(a.Args()...)
}

// BootstrapSource locates the bootstrap script in object storage.
type BootstrapSource struct {
	Bucket string
	Key    string
	// Endpoint is set for S3 compatible stores other than AWS.
	Endpoint string
	// AccessKey and SecretKey are written to the instance when the
	// instance has no role to obtain credentials from.
	AccessKey string
	SecretKey string
}

// InstanceSpec is the immutable description of the game server instance.
// Changing any field that feeds Fingerprint requires replacing the
// instance.
type InstanceSpec struct {
	Name            string
	Provider        string
	Region          string
	ImageID         string
	InstanceSize    string
	InstanceProfile string
	VolumeSizeGiB   int
	VolumeDevice    string
	Placement       placement.Spec
	Storage         storage.Handle
	SecurityRules   []SecurityRule
	BootstrapArgs   BootstrapArgs
	Bootstrap       BootstrapSource
	UserData        string
	// StartEndpoint reports whether the HTTP start endpoint is provisioned.
	StartEndpoint bool
	Labels        map[string]string
}

type fingerprintFields struct {
	Provider        string `json:"provider"`
	Region          string `json:"region"`
	ImageID         string `json:"image"`
	InstanceSize    string `json:"size"`
	InstanceProfile string `json:"profile"`
	VolumeSizeGiB   int    `json:"volume"`
	Network         string `json:"network"`
	Subnets         string `json:"subnets"`
	UserData        string `json:"user_data"`
}

// Fingerprint returns a short stable hash over every replacement-forcing
// field. Storage credentials in the user data are not part of it.
func (s *InstanceSpec) Fingerprint() string {
	fields := fingerprintFields{
		Provider:        s.Provider,
		Region:          s.Region,
		ImageID:         s.ImageID,
		InstanceSize:    s.InstanceSize,
		InstanceProfile: s.InstanceProfile,
		VolumeSizeGiB:   s.VolumeSizeGiB,
		Network:         s.Placement.Network.ID,
	}
	if s.Placement.Subnets != nil {
		fields.Subnets = s.Placement.Subnets.String()
	}
	fields.UserData = withoutCredentials(s.UserData)

	// Marshalling a struct of strings and ints cannot fail.
	data, _ := json.Marshal(fields)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])[:16]
}
