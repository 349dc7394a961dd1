package hcloud

import (
	"context"
	"fmt"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
)

// volumeFormat is the filesystem of the save data volume.
const volumeFormat = "ext4"

// ensureVolume returns the named volume, creating it in the client's
// location when it doesn't exist. A volume of a different size is an error;
// save data is never resized implicitly.
func (c *Client) ensureVolume(ctx context.Context, name string, sizeGiB int, labels map[string]string) (*hcloud.Volume, error) {
	return (&EnsureOperation[*hcloud.Volume, hcloud.VolumeCreateOpts, any]{
		Name:         name,
		ResourceType: "volume",
		Get:          c.client.Volume.Get,
		Create: func(ctx context.Context, opts hcloud.VolumeCreateOpts) (*CreateResult[*hcloud.Volume], *hcloud.Response, error) {
			res, resp, err := c.client.Volume.Create(ctx, opts)
			if err != nil {
				return nil, resp, err
			}
			return &CreateResult[*hcloud.Volume]{Resource: res.Volume, Action: res.Action}, resp, nil
		},
		Validate: func(v *hcloud.Volume) error {
			if v.Size != sizeGiB {
				return fmt.Errorf("volume %s exists with size %d GiB (expected %d GiB)", name, v.Size, sizeGiB)
			}
			if v.Server != nil {
				return fmt.Errorf("volume %s is attached to server %d", name, v.Server.ID)
			}
			return nil
		},
		CreateOptsMapper: func() hcloud.VolumeCreateOpts {
			return hcloud.VolumeCreateOpts{
				Name:     name,
				Size:     sizeGiB,
				Location: &hcloud.Location{Name: c.location},
				Format:   hcloud.Ptr(volumeFormat),
				Labels:   labels,
			}
		},
	}).Execute(ctx, c)
}

// deleteVolume deletes the volume with the given id, retrying while the
// detach from a deleted server is still running.
func (c *Client) deleteVolume(ctx context.Context, id int64) error {
	return (&DeleteOperation[*hcloud.Volume]{
		Name:         formatID(id),
		ResourceType: "volume",
		Get:          c.client.Volume.Get,
		Delete:       c.client.Volume.Delete,
	}).Execute(ctx, c)
}
