package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"

	"github.com/imamik/gamehost/pkg/cloud"
)

// StartInstance starts the instance. The StartInstances output is returned
// as-is.
func (c *Client) StartInstance(ctx context.Context, id string) (any, error) {
	out, err := c.ec2.StartInstances(ctx, &ec2.StartInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("failed to start instance %s: %w", id, err)
	}
	return out, nil
}

// StopInstance stops the instance.
func (c *Client) StopInstance(ctx context.Context, id string) (any, error) {
	out, err := c.ec2.StopInstances(ctx, &ec2.StopInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("failed to stop instance %s: %w", id, err)
	}
	return out, nil
}

// DescribeInstance describes exactly one instance. A missing reservation
// or instance yields an empty address rather than an error; Raw is the
// full DescribeInstances output.
func (c *Client) DescribeInstance(ctx context.Context, id string) (*cloud.Description, error) {
	out, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		return nil, fmt.Errorf("failed to describe instance %s: %w", id, err)
	}

	desc := &cloud.Description{InstanceID: id, Raw: out}
	if len(out.Reservations) > 0 && len(out.Reservations[0].Instances) > 0 {
		inst := out.Reservations[0].Instances[0]
		desc.PublicAddress = aws.ToString(inst.PublicIpAddress)
		if inst.State != nil {
			desc.State = string(inst.State.Name)
		}
	}
	return desc, nil
}
