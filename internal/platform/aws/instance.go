package aws

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"sort"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/internal/util/retry"
	"github.com/imamik/gamehost/pkg/cloud"
)

// liveStates are the instance states FindInstance considers.
var liveStates = []string{
	string(types.InstanceStateNamePending),
	string(types.InstanceStateNameRunning),
	string(types.InstanceStateNameStopping),
	string(types.InstanceStateNameStopped),
}

// CreateInstance launches the game server and waits until EC2 reports it.
func (c *Client) CreateInstance(ctx context.Context, spec *planner.InstanceSpec, securityGroupID string) (*cloud.Instance, error) {
	target, err := c.pickSubnet(ctx, spec.Placement)
	if err != nil {
		return nil, err
	}

	input := &ec2.RunInstancesInput{
		ImageId:      aws.String(spec.ImageID),
		InstanceType: types.InstanceType(spec.InstanceSize),
		MinCount:     aws.Int32(1),
		MaxCount:     aws.Int32(1),
		UserData:     aws.String(base64.StdEncoding.EncodeToString([]byte(spec.UserData))),
		BlockDeviceMappings: []types.BlockDeviceMapping{{
			DeviceName: aws.String(spec.VolumeDevice),
			Ebs: &types.EbsBlockDevice{
				VolumeSize:          aws.Int32(int32(spec.VolumeSizeGiB)),
				VolumeType:          types.VolumeTypeGp3,
				DeleteOnTermination: aws.Bool(true),
			},
		}},
		NetworkInterfaces: []types.InstanceNetworkInterfaceSpecification{{
			DeviceIndex:              aws.Int32(0),
			AssociatePublicIpAddress: aws.Bool(true),
			SubnetId:                 aws.String(target.ID),
			Groups:                   []string{securityGroupID},
		}},
		Placement: &types.Placement{AvailabilityZone: optionalString(target.AvailabilityZone)},
		TagSpecifications: []types.TagSpecification{
			{ResourceType: types.ResourceTypeInstance, Tags: toTags(spec.Labels, spec.Name)},
			{ResourceType: types.ResourceTypeVolume, Tags: toTags(spec.Labels, spec.Name)},
		},
	}
	if spec.InstanceProfile != "" {
		input.IamInstanceProfile = &types.IamInstanceProfileSpecification{Name: aws.String(spec.InstanceProfile)}
	}

	createCtx, cancel := context.WithTimeout(ctx, c.timeouts.InstanceCreate)
	defer cancel()

	out, err := c.ec2.RunInstances(createCtx, input)
	if err != nil {
		return nil, fmt.Errorf("failed to run instance %s: %w", spec.Name, err)
	}
	if len(out.Instances) == 0 {
		return nil, fmt.Errorf("run instance %s returned no instance", spec.Name)
	}
	id := aws.ToString(out.Instances[0].InstanceId)

	// The id is eventually consistent across EC2 endpoints.
	var inst *cloud.Instance
	visibleCtx, cancelVisible := context.WithTimeout(ctx, c.timeouts.InstanceVisible)
	defer cancelVisible()
	err = retry.WithExponentialBackoff(visibleCtx, func() error {
		found, err := c.describe(visibleCtx, id)
		if err != nil {
			return err
		}
		inst = toInstance(*found)
		return nil
	}, c.timeouts.RetryOptions(
		retry.WithRetryIf(func(err error) bool { return errors.Is(err, cloud.ErrInstanceNotFound) }),
	)...)
	if err != nil {
		return nil, fmt.Errorf("instance %s did not become visible: %w", id, err)
	}
	return inst, nil
}

// FindInstance returns the live instance tagged with all labels.
func (c *Client) FindInstance(ctx context.Context, labels map[string]string) (*cloud.Instance, error) {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	filters := []types.Filter{filter("instance-state-name", liveStates...)}
	for _, k := range keys {
		filters = append(filters, filter("tag:"+k, labels[k]))
	}

	out, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{Filters: filters})
	if err != nil {
		return nil, fmt.Errorf("failed to find instance: %w", err)
	}
	for _, r := range out.Reservations {
		if len(r.Instances) > 0 {
			return toInstance(r.Instances[0]), nil
		}
	}
	return nil, nil
}

// DeleteInstance terminates the instance. The root volume is deleted with it.
func (c *Client) DeleteInstance(ctx context.Context, id string) error {
	deleteCtx, cancel := context.WithTimeout(ctx, c.timeouts.Delete)
	defer cancel()

	_, err := c.ec2.TerminateInstances(deleteCtx, &ec2.TerminateInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		if IsInstanceNotFound(err) {
			return nil
		}
		return fmt.Errorf("failed to terminate instance %s: %w", id, err)
	}
	return nil
}

func (c *Client) describe(ctx context.Context, id string) (*types.Instance, error) {
	out, err := c.ec2.DescribeInstances(ctx, &ec2.DescribeInstancesInput{InstanceIds: []string{id}})
	if err != nil {
		if IsInstanceNotFound(err) {
			return nil, fmt.Errorf("%s: %w", id, cloud.ErrInstanceNotFound)
		}
		return nil, err
	}
	if len(out.Reservations) == 0 || len(out.Reservations[0].Instances) == 0 {
		return nil, fmt.Errorf("%s: %w", id, cloud.ErrInstanceNotFound)
	}
	return &out.Reservations[0].Instances[0], nil
}

func toInstance(i types.Instance) *cloud.Instance {
	inst := &cloud.Instance{
		ID:            aws.ToString(i.InstanceId),
		PublicAddress: aws.ToString(i.PublicIpAddress),
		Labels:        make(map[string]string, len(i.Tags)),
	}
	if i.State != nil {
		inst.State = string(i.State.Name)
	}
	for _, tag := range i.Tags {
		key := aws.ToString(tag.Key)
		if key == "Name" {
			inst.Name = aws.ToString(tag.Value)
			continue
		}
		inst.Labels[key] = aws.ToString(tag.Value)
	}
	return inst
}

func toTags(labels map[string]string, name string) []types.Tag {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]types.Tag, 0, len(labels)+1)
	tags = append(tags, types.Tag{Key: aws.String("Name"), Value: aws.String(name)})
	for _, k := range keys {
		tags = append(tags, types.Tag{Key: aws.String(k), Value: aws.String(labels[k])})
	}
	return tags
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return aws.String(s)
}
