package hcloud

import (
	"context"
	"fmt"
	"net"
	"strconv"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/planner"
)

// EnsureSecurityGroup ensures a firewall with the given rules exists and
// returns its id. The rules of an existing firewall are replaced. Hetzner
// firewalls are not bound to a network.
func (c *Client) EnsureSecurityGroup(ctx context.Context, name string, _ placement.NetworkRef, rules []planner.SecurityRule, labels map[string]string) (string, error) {
	fwRules, err := firewallRules(rules)
	if err != nil {
		return "", err
	}

	fw, err := (&EnsureOperation[*hcloud.Firewall, hcloud.FirewallCreateOpts, hcloud.FirewallSetRulesOpts]{
		Name:         name,
		ResourceType: "firewall",
		Get:          c.client.Firewall.Get,
		Create:       c.createFirewall,
		Update:       c.client.Firewall.SetRules,
		CreateOptsMapper: func() hcloud.FirewallCreateOpts {
			return hcloud.FirewallCreateOpts{
				Name:   name,
				Rules:  fwRules,
				Labels: labels,
			}
		},
		UpdateOptsMapper: func(_ *hcloud.Firewall) hcloud.FirewallSetRulesOpts {
			return hcloud.FirewallSetRulesOpts{
				Rules: fwRules,
			}
		},
	}).Execute(ctx, c)
	if err != nil {
		return "", err
	}
	return formatID(fw.ID), nil
}

func (c *Client) createFirewall(ctx context.Context, opts hcloud.FirewallCreateOpts) (*CreateResult[*hcloud.Firewall], *hcloud.Response, error) {
	res, resp, err := c.client.Firewall.Create(ctx, opts)
	if err != nil {
		return nil, resp, err
	}
	return &CreateResult[*hcloud.Firewall]{
		Resource: res.Firewall,
		Actions:  res.Actions,
	}, resp, nil
}

func firewallRules(rules []planner.SecurityRule) ([]hcloud.FirewallRule, error) {
	out := make([]hcloud.FirewallRule, 0, len(rules))
	for _, rule := range rules {
		sources := make([]net.IPNet, 0, len(rule.Sources))
		for _, src := range rule.Sources {
			_, ipNet, err := net.ParseCIDR(src)
			if err != nil {
				return nil, fmt.Errorf("invalid source %q: %w", src, err)
			}
			sources = append(sources, *ipNet)
		}

		fr := hcloud.FirewallRule{
			Direction: hcloud.FirewallRuleDirectionIn,
			Protocol:  hcloud.FirewallRuleProtocol(rule.Protocol),
			SourceIPs: sources,
			Port:      hcloud.Ptr(strconv.Itoa(rule.Port)),
		}
		if rule.Description != "" {
			fr.Description = hcloud.Ptr(rule.Description)
		}
		out = append(out, fr)
	}
	return out, nil
}
