package aws

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/planner"
)

// EnsureSecurityGroup creates the security group if it doesn't exist and
// authorizes every rule on it. Rules that already exist are kept.
func (c *Client) EnsureSecurityGroup(ctx context.Context, name string, network placement.NetworkRef, rules []planner.SecurityRule, labels map[string]string) (string, error) {
	groupID, err := c.findSecurityGroup(ctx, name, network.ID)
	if err != nil {
		return "", err
	}

	if groupID == "" {
		out, err := c.ec2.CreateSecurityGroup(ctx, &ec2.CreateSecurityGroupInput{
			GroupName:   aws.String(name),
			Description: aws.String("Game ports of " + name),
			VpcId:       optionalString(network.ID),
			TagSpecifications: []types.TagSpecification{{
				ResourceType: types.ResourceTypeSecurityGroup,
				Tags:         toTags(labels, name),
			}},
		})
		if err != nil {
			if !isErrorCode(err, codeDuplicateGroup) {
				return "", fmt.Errorf("failed to create security group %s: %w", name, err)
			}
			// Created concurrently.
			if groupID, err = c.findSecurityGroup(ctx, name, network.ID); err != nil {
				return "", err
			}
		} else {
			groupID = aws.ToString(out.GroupId)
		}
	}

	for _, rule := range rules {
		_, err := c.ec2.AuthorizeSecurityGroupIngress(ctx, &ec2.AuthorizeSecurityGroupIngressInput{
			GroupId:       aws.String(groupID),
			IpPermissions: []types.IpPermission{ipPermission(rule)},
		})
		if err != nil && !isErrorCode(err, codeDuplicatePermision) {
			return "", fmt.Errorf("failed to authorize %s/%d on %s: %w", rule.Protocol, rule.Port, groupID, err)
		}
	}

	return groupID, nil
}

func (c *Client) findSecurityGroup(ctx context.Context, name, vpcID string) (string, error) {
	filters := []types.Filter{filter("group-name", name)}
	if vpcID != "" {
		filters = append(filters, filter("vpc-id", vpcID))
	}
	out, err := c.ec2.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{Filters: filters})
	if err != nil {
		return "", fmt.Errorf("failed to describe security group %s: %w", name, err)
	}
	if len(out.SecurityGroups) == 0 {
		return "", nil
	}
	return aws.ToString(out.SecurityGroups[0].GroupId), nil
}

func ipPermission(rule planner.SecurityRule) types.IpPermission {
	perm := types.IpPermission{
		IpProtocol: aws.String(string(rule.Protocol)),
		FromPort:   aws.Int32(int32(rule.Port)),
		ToPort:     aws.Int32(int32(rule.Port)),
	}
	for _, src := range rule.Sources {
		if strings.Contains(src, ":") {
			perm.Ipv6Ranges = append(perm.Ipv6Ranges, types.Ipv6Range{
				CidrIpv6:    aws.String(src),
				Description: optionalString(rule.Description),
			})
			continue
		}
		perm.IpRanges = append(perm.IpRanges, types.IpRange{
			CidrIp:      aws.String(src),
			Description: optionalString(rule.Description),
		})
	}
	return perm
}
