package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/internal/util/labels"
	"github.com/imamik/gamehost/internal/util/naming"
	"github.com/imamik/gamehost/internal/util/retry"
	"github.com/imamik/gamehost/pkg/cloud"
)

// CreateInstance creates the save data volume and the server with the
// volume mounted and the firewall applied.
func (c *Client) CreateInstance(ctx context.Context, spec *planner.InstanceSpec, securityGroupID string) (*cloud.Instance, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeouts.InstanceCreate)
	defer cancel()

	firewallID, err := parseID("firewall", securityGroupID)
	if err != nil {
		return nil, err
	}
	networks, err := attachedNetworks(spec.Placement)
	if err != nil {
		return nil, err
	}
	if err := c.checkSubnet(ctx, spec.Placement); err != nil {
		return nil, err
	}

	volumeLabels := labels.NewLabelBuilder("").Merge(spec.Labels).WithRole(labels.RoleStorage).Build()
	delete(volumeLabels, labels.KeyFingerprint)
	volume, err := c.ensureVolume(ctx, naming.Volume(spec.Name), spec.VolumeSizeGiB, volumeLabels)
	if err != nil {
		return nil, err
	}

	opts := hcloud.ServerCreateOpts{
		Name:       spec.Name,
		ServerType: &hcloud.ServerType{Name: spec.InstanceSize},
		Image:      &hcloud.Image{Name: spec.ImageID},
		Location:   &hcloud.Location{Name: c.location},
		UserData:   spec.UserData,
		Labels:     spec.Labels,
		Volumes:    []*hcloud.Volume{volume},
		Automount:  hcloud.Ptr(true),
		Firewalls:  []*hcloud.ServerCreateFirewall{{Firewall: hcloud.Firewall{ID: firewallID}}},
	}
	for _, id := range networks {
		opts.Networks = append(opts.Networks, &hcloud.Network{ID: id})
	}

	result, err := c.createServerWithRetry(ctx, opts)
	if err != nil {
		return nil, err
	}
	return toInstance(result.Server), nil
}

// createServerWithRetry creates a server with exponential backoff retry logic.
func (c *Client) createServerWithRetry(ctx context.Context, opts hcloud.ServerCreateOpts) (hcloud.ServerCreateResult, error) {
	var result hcloud.ServerCreateResult

	err := retry.WithExponentialBackoff(ctx, func() error {
		res, _, err := c.client.Server.Create(ctx, opts)
		if err != nil {
			if isInvalidParameter(err) {
				return retry.Fatal(err)
			}
			return err
		}
		result = res
		return nil
	}, c.timeouts.RetryOptions()...)

	if err != nil {
		return result, fmt.Errorf("failed to create server %s: %w", opts.Name, err)
	}

	// Wait for server creation to complete
	if err := c.client.Action.WaitFor(ctx, append([]*hcloud.Action{result.Action}, result.NextActions...)...); err != nil {
		return result, fmt.Errorf("failed to wait for server creation: %w", err)
	}

	return result, nil
}

// FindInstance returns the server carrying all labels, or nil.
func (c *Client) FindInstance(ctx context.Context, selector map[string]string) (*cloud.Instance, error) {
	servers, err := c.client.Server.AllWithOpts(ctx, hcloud.ServerListOpts{
		ListOpts: hcloud.ListOpts{LabelSelector: labels.SelectorString(selector)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list servers: %w", err)
	}
	if len(servers) == 0 {
		return nil, nil
	}
	return toInstance(servers[0]), nil
}

// DeleteInstance deletes the server, then the volumes that were attached
// to it.
func (c *Client) DeleteInstance(ctx context.Context, id string) error {
	serverID, err := parseID("server", id)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	server, _, err := c.client.Server.GetByID(ctx, serverID)
	if err != nil {
		return fmt.Errorf("failed to get server %s: %w", id, err)
	}
	if server == nil {
		return nil
	}

	result, _, err := c.client.Server.DeleteWithResult(ctx, server)
	if err != nil {
		if IsNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to delete server %s: %w", id, err)
	}
	if err := waitForActions(ctx, c.client, result.Action); err != nil {
		return fmt.Errorf("failed to wait for server deletion: %w", err)
	}

	for _, v := range server.Volumes {
		if err := c.deleteVolume(ctx, v.ID); err != nil {
			return fmt.Errorf("failed to delete volume %d: %w", v.ID, err)
		}
	}
	return nil
}

func toInstance(s *hcloud.Server) *cloud.Instance {
	inst := &cloud.Instance{
		ID:     formatID(s.ID),
		Name:   s.Name,
		State:  string(s.Status),
		Labels: s.Labels,
	}
	if ip := s.PublicNet.IPv4.IP; ip != nil && !ip.IsUnspecified() {
		inst.PublicAddress = ip.String()
	}
	return inst
}
