package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/gamehost/pkg/cloud"
)

// StartInstance powers the server on. The returned action is not awaited.
func (c *Client) StartInstance(ctx context.Context, id string) (any, error) {
	serverID, err := parseID("server", id)
	if err != nil {
		return nil, err
	}
	action, _, err := c.client.Server.Poweron(ctx, &hcloud.Server{ID: serverID})
	if err != nil {
		return nil, fmt.Errorf("failed to power on server %s: %w", id, err)
	}
	return action, nil
}

// StopInstance requests a graceful shutdown through ACPI.
func (c *Client) StopInstance(ctx context.Context, id string) (any, error) {
	serverID, err := parseID("server", id)
	if err != nil {
		return nil, err
	}
	action, _, err := c.client.Server.Shutdown(ctx, &hcloud.Server{ID: serverID})
	if err != nil {
		return nil, fmt.Errorf("failed to shut down server %s: %w", id, err)
	}
	return action, nil
}

// DescribeInstance reads the server. A server without a public IPv4
// address describes with an empty address.
func (c *Client) DescribeInstance(ctx context.Context, id string) (*cloud.Description, error) {
	serverID, err := parseID("server", id)
	if err != nil {
		return nil, err
	}
	server, _, err := c.client.Server.GetByID(ctx, serverID)
	if err != nil {
		return nil, fmt.Errorf("failed to get server %s: %w", id, err)
	}
	if server == nil {
		return nil, fmt.Errorf("server %s: %w", id, cloud.ErrInstanceNotFound)
	}

	inst := toInstance(server)
	return &cloud.Description{
		InstanceID:    id,
		State:         inst.State,
		PublicAddress: inst.PublicAddress,
		Raw:           describePayload(server, inst),
	}, nil
}

// describePayload is the diagnostic view of a server shown on the start
// page. hcloud.Server holds cyclic references and can't be marshalled.
func describePayload(s *hcloud.Server, inst *cloud.Instance) map[string]any {
	payload := map[string]any{
		"id":          s.ID,
		"name":        s.Name,
		"status":      inst.State,
		"public_ipv4": inst.PublicAddress,
		"labels":      s.Labels,
		"created":     s.Created,
	}
	if s.ServerType != nil {
		payload["server_type"] = s.ServerType.Name
	}
	if s.Datacenter != nil && s.Datacenter.Location != nil {
		payload["location"] = s.Datacenter.Location.Name
	}
	if s.PublicNet.IPv6.Network != nil {
		payload["public_ipv6"] = s.PublicNet.IPv6.Network.String()
	}
	return payload
}
