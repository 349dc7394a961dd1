// Package placement resolves where the game server instance lives on the
// provider network: which virtual network it binds to and which subnet (or
// class of subnets) it is launched into.
//
// Resolution runs once per provisioning run and never retries. Every
// failure returned from Resolve is a configuration error and must stop
// provisioning before any instance is created.
package placement

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrNetworkNotFound is returned by a NetworkLookup when an explicitly
	// requested network does not exist.
	ErrNetworkNotFound = errors.New("network not found")

	// ErrNoDefaultNetwork is returned when no network id is configured and
	// the region has no default network to fall back to.
	ErrNoDefaultNetwork = errors.New("no default network in region")

	// ErrConflictingPlacement is returned when a subnet id is configured
	// without the availability zone needed to reference it.
	ErrConflictingPlacement = errors.New("subnet id requires an availability zone")
)

// NetworkLookup is implemented by the cloud backends.
type NetworkLookup interface {
	// LookupNetwork returns the network with exactly the given id.
	// Implementations wrap ErrNetworkNotFound when it does not exist.
	LookupNetwork(ctx context.Context, id string) (NetworkRef, error)

	// DefaultNetwork returns the provider default network for the region.
	// Implementations wrap ErrNoDefaultNetwork when there is none.
	DefaultNetwork(ctx context.Context) (NetworkRef, error)
}

// NetworkRef identifies a bound network.
type NetworkRef struct {
	ID      string
	Name    string
	Default bool
}

// String returns a printable form of the reference.
func (n NetworkRef) String() string {
	switch {
	case n.Default && n.ID == "":
		return "default"
	case n.Default:
		return n.ID + " (default)"
	case n.Name != "" && n.Name != n.ID:
		return fmt.Sprintf("%s (%s)", n.ID, n.Name)
	default:
		return n.ID
	}
}

// SubnetSelection is either an ExplicitSubnet or PublicSubnets.
type SubnetSelection interface {
	isSubnetSelection()
	String() string
}

// ExplicitSubnet pins the instance to exactly one subnet.
type ExplicitSubnet struct {
	ID               string
	AvailabilityZone string
}

func (ExplicitSubnet) isSubnetSelection() {}

func (s ExplicitSubnet) String() string {
	return fmt.Sprintf("%s (%s)", s.ID, s.AvailabilityZone)
}

// PublicSubnets lets the apply step pick any publicly addressable subnet
// of the bound network.
type PublicSubnets struct{}

func (PublicSubnets) isSubnetSelection() {}

func (PublicSubnets) String() string { return "any public subnet" }

// Spec is a fully resolved placement.
type Spec struct {
	Network NetworkRef
	Subnets SubnetSelection
}

// Explicit reports whether the spec references a fixed subnet.
func (s Spec) Explicit() (ExplicitSubnet, bool) {
	sub, ok := s.Subnets.(ExplicitSubnet)
	return sub, ok
}

// Request holds the optional placement inputs from configuration.
type Request struct {
	NetworkID        string
	SubnetID         string
	AvailabilityZone string
}

// Resolver turns a Request into a Spec.
type Resolver struct {
	networks NetworkLookup
}

// NewResolver creates a resolver backed by the given lookup.
func NewResolver(networks NetworkLookup) *Resolver {
	return &Resolver{networks: networks}
}

// Resolve binds the network and selects the subnet.
func (r *Resolver) Resolve(ctx context.Context, req Request) (Spec, error) {
	subnets, err := selectSubnets(req.SubnetID, req.AvailabilityZone)
	if err != nil {
		return Spec{}, err
	}

	network, err := r.bindNetwork(ctx, req.NetworkID)
	if err != nil {
		return Spec{}, err
	}

	return Spec{Network: network, Subnets: subnets}, nil
}

func (r *Resolver) bindNetwork(ctx context.Context, networkID string) (NetworkRef, error) {
	if networkID != "" {
		network, err := r.networks.LookupNetwork(ctx, networkID)
		if err != nil {
			return NetworkRef{}, fmt.Errorf("failed to bind network %s: %w", networkID, err)
		}
		return network, nil
	}

	network, err := r.networks.DefaultNetwork(ctx)
	if err != nil {
		return NetworkRef{}, fmt.Errorf("failed to bind default network: %w", err)
	}
	network.Default = true
	return network, nil
}

// selectSubnets is pure: an explicit subnet needs both the id and the
// zone, a lone zone is ignored.
func selectSubnets(subnetID, availabilityZone string) (SubnetSelection, error) {
	switch {
	case subnetID != "" && availabilityZone != "":
		return ExplicitSubnet{ID: subnetID, AvailabilityZone: availabilityZone}, nil
	case subnetID != "":
		return nil, fmt.Errorf("subnet %s: %w", subnetID, ErrConflictingPlacement)
	default:
		return PublicSubnets{}, nil
	}
}
