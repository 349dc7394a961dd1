package hcloud

import (
	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/pkg/cloud"
)

// Client implements cloud.Provider using the Hetzner Cloud API.
type Client struct {
	client   *hcloud.Client
	location string
	timeouts *config.Timeouts
}

var _ cloud.Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *config.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithHCloudClient sets a custom hcloud client (useful for testing).
func WithHCloudClient(hc *hcloud.Client) ClientOption {
	return func(c *Client) {
		c.client = hc
	}
}

// NewClient creates a Client for the given location (nbg1, fsn1, hel1).
func NewClient(token, location string, opts ...ClientOption) *Client {
	c := &Client{
		client: hcloud.NewClient(
			hcloud.WithToken(token),
			hcloud.WithApplication("gamehost", ""),
		),
		location: location,
		timeouts: config.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements cloud.Provider.
func (c *Client) Name() string {
	return cloud.ProviderHCloud
}
