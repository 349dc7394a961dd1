package hcloud

import (
	"context"
	"fmt"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/pkg/cloud"
)

// publicNetworkName names the implicit public network.
const publicNetworkName = "public"

// LookupNetwork returns the private network with the given numeric id.
func (c *Client) LookupNetwork(ctx context.Context, id string) (placement.NetworkRef, error) {
	networkID, err := parseID("network", id)
	if err != nil {
		return placement.NetworkRef{}, fmt.Errorf("%w: %w", placement.ErrNetworkNotFound, err)
	}

	network, _, err := c.client.Network.GetByID(ctx, networkID)
	if err != nil {
		return placement.NetworkRef{}, fmt.Errorf("failed to get network %s: %w", id, err)
	}
	if network == nil {
		return placement.NetworkRef{}, fmt.Errorf("network %s: %w", id, placement.ErrNetworkNotFound)
	}
	return placement.NetworkRef{ID: formatID(network.ID), Name: network.Name}, nil
}

// DefaultNetwork returns the public network. Every server gets a public
// interface, so there is always one.
func (c *Client) DefaultNetwork(_ context.Context) (placement.NetworkRef, error) {
	return placement.NetworkRef{Name: publicNetworkName, Default: true}, nil
}

// attachedNetworks returns the private networks a new server joins.
func attachedNetworks(spec placement.Spec) ([]int64, error) {
	if spec.Network.ID == "" {
		return nil, nil
	}
	id, err := parseID("network", spec.Network.ID)
	if err != nil {
		return nil, err
	}
	return []int64{id}, nil
}

// checkSubnet verifies an explicit subnet against the bound network. A
// Hetzner subnet is addressed by its IP range and its network zone stands in
// for the availability zone.
func (c *Client) checkSubnet(ctx context.Context, spec placement.Spec) error {
	explicit, ok := spec.Explicit()
	if !ok {
		return nil
	}
	if spec.Network.ID == "" {
		return fmt.Errorf("subnet %s on the public network: %w", explicit.ID, cloud.ErrSubnetNotFound)
	}

	networkID, err := parseID("network", spec.Network.ID)
	if err != nil {
		return err
	}
	network, _, err := c.client.Network.GetByID(ctx, networkID)
	if err != nil {
		return fmt.Errorf("failed to get network %s: %w", spec.Network.ID, err)
	}
	if network == nil {
		return fmt.Errorf("network %s: %w", spec.Network.ID, placement.ErrNetworkNotFound)
	}

	for _, sub := range network.Subnets {
		if sub.IPRange == nil || sub.IPRange.String() != explicit.ID {
			continue
		}
		if string(sub.NetworkZone) != explicit.AvailabilityZone {
			return fmt.Errorf("subnet %s is in zone %s, not %s: %w",
				explicit.ID, sub.NetworkZone, explicit.AvailabilityZone, cloud.ErrSubnetNotFound)
		}
		return nil
	}
	return fmt.Errorf("subnet %s in network %s: %w", explicit.ID, spec.Network.ID, cloud.ErrSubnetNotFound)
}
