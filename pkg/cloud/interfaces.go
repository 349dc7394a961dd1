// Package cloud defines the provider-neutral contracts implemented by the
// aws and hcloud backends.
//
// Provisioning talks to Infrastructure; the start path only needs
// PowerController. Keeping the two apart lets the HTTP service run with a
// narrowly scoped credential that can start and describe one instance.
package cloud

import (
	"context"
	"errors"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/planner"
)

// Supported provider names.
const (
	ProviderAWS    = "aws"
	ProviderHCloud = "hcloud"
)

var (
	// ErrInstanceNotFound is returned when an instance id does not resolve.
	ErrInstanceNotFound = errors.New("instance not found")

	// ErrNoPublicSubnet is returned when a network has no publicly
	// addressable subnet to launch into.
	ErrNoPublicSubnet = errors.New("no public subnet in network")

	// ErrSubnetNotFound is returned when an explicit subnet is not part of
	// the bound network.
	ErrSubnetNotFound = errors.New("subnet not found in network")
)

// Instance is a provisioned compute instance.
type Instance struct {
	ID            string
	Name          string
	State         string
	PublicAddress string
	Labels        map[string]string
}

// Description is the result of describing an instance. Raw carries the
// provider response for diagnostics.
type Description struct {
	InstanceID    string
	State         string
	PublicAddress string
	Raw           any
}

// Infrastructure is used by provisioning.
type Infrastructure interface {
	placement.NetworkLookup

	// EnsureSecurityGroup creates or updates the inbound rules for the
	// instance and returns the provider id of the group or firewall.
	EnsureSecurityGroup(ctx context.Context, name string, network placement.NetworkRef, rules []planner.SecurityRule, labels map[string]string) (string, error)

	// FindInstance returns the live instance carrying all labels, or nil.
	FindInstance(ctx context.Context, labels map[string]string) (*Instance, error)

	// CreateInstance launches the instance described by spec. The concrete
	// subnet for placement.PublicSubnets is chosen here.
	CreateInstance(ctx context.Context, spec *planner.InstanceSpec, securityGroupID string) (*Instance, error)

	// DeleteInstance terminates the instance and its dedicated volume.
	DeleteInstance(ctx context.Context, id string) error
}

// PowerController starts, stops and describes an existing instance.
type PowerController interface {
	// StartInstance issues a start. Starting a running instance is
	// accepted by every supported provider.
	StartInstance(ctx context.Context, id string) (any, error)
	StopInstance(ctx context.Context, id string) (any, error)
	DescribeInstance(ctx context.Context, id string) (*Description, error)
}

// Provider is a complete backend.
type Provider interface {
	Infrastructure
	PowerController
	Name() string
}
