package aws

import (
	"context"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/pkg/cloud"
)

// LookupNetwork returns the VPC with the given id.
func (c *Client) LookupNetwork(ctx context.Context, id string) (placement.NetworkRef, error) {
	out, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{VpcIds: []string{id}})
	if err != nil {
		if isErrorCode(err, codeVpcNotFound) {
			return placement.NetworkRef{}, fmt.Errorf("vpc %s: %w", id, placement.ErrNetworkNotFound)
		}
		return placement.NetworkRef{}, fmt.Errorf("failed to describe vpc %s: %w", id, err)
	}
	if len(out.Vpcs) == 0 {
		return placement.NetworkRef{}, fmt.Errorf("vpc %s: %w", id, placement.ErrNetworkNotFound)
	}
	return vpcRef(out.Vpcs[0]), nil
}

// DefaultNetwork returns the default VPC of the region.
func (c *Client) DefaultNetwork(ctx context.Context) (placement.NetworkRef, error) {
	out, err := c.ec2.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{
		Filters: []types.Filter{filter("is-default", "true")},
	})
	if err != nil {
		return placement.NetworkRef{}, fmt.Errorf("failed to describe default vpc: %w", err)
	}
	if len(out.Vpcs) == 0 {
		return placement.NetworkRef{}, fmt.Errorf("region %s: %w", c.region, placement.ErrNoDefaultNetwork)
	}
	return vpcRef(out.Vpcs[0]), nil
}

func vpcRef(vpc types.Vpc) placement.NetworkRef {
	ref := placement.NetworkRef{
		ID:      aws.ToString(vpc.VpcId),
		Default: aws.ToBool(vpc.IsDefault),
	}
	for _, tag := range vpc.Tags {
		if aws.ToString(tag.Key) == "Name" {
			ref.Name = aws.ToString(tag.Value)
		}
	}
	return ref
}

// subnet is a launch target.
type subnet struct {
	ID               string
	AvailabilityZone string
}

// pickSubnet resolves the subnet selection of a placement to one subnet.
// Public subnets are ordered by id so repeated runs launch into the same one.
func (c *Client) pickSubnet(ctx context.Context, spec placement.Spec) (subnet, error) {
	if explicit, ok := spec.Explicit(); ok {
		return subnet{ID: explicit.ID, AvailabilityZone: explicit.AvailabilityZone}, nil
	}

	out, err := c.ec2.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{
		Filters: []types.Filter{
			filter("vpc-id", spec.Network.ID),
			filter("map-public-ip-on-launch", "true"),
		},
	})
	if err != nil {
		return subnet{}, fmt.Errorf("failed to describe subnets of %s: %w", spec.Network.ID, err)
	}
	if len(out.Subnets) == 0 {
		return subnet{}, fmt.Errorf("vpc %s: %w", spec.Network.ID, cloud.ErrNoPublicSubnet)
	}

	subnets := make([]subnet, 0, len(out.Subnets))
	for _, s := range out.Subnets {
		subnets = append(subnets, subnet{
			ID:               aws.ToString(s.SubnetId),
			AvailabilityZone: aws.ToString(s.AvailabilityZone),
		})
	}
	sort.Slice(subnets, func(i, j int) bool { return subnets[i].ID < subnets[j].ID })
	return subnets[0], nil
}
