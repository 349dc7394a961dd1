package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	gconfig "github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/pkg/cloud"
)

// EC2API is the subset of the EC2 client used by Client.
type EC2API interface {
	DescribeVpcs(ctx context.Context, in *ec2.DescribeVpcsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeVpcsOutput, error)
	DescribeSubnets(ctx context.Context, in *ec2.DescribeSubnetsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, in *ec2.DescribeSecurityGroupsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeSecurityGroupsOutput, error)
	CreateSecurityGroup(ctx context.Context, in *ec2.CreateSecurityGroupInput, optFns ...func(*ec2.Options)) (*ec2.CreateSecurityGroupOutput, error)
	AuthorizeSecurityGroupIngress(ctx context.Context, in *ec2.AuthorizeSecurityGroupIngressInput, optFns ...func(*ec2.Options)) (*ec2.AuthorizeSecurityGroupIngressOutput, error)
	RunInstances(ctx context.Context, in *ec2.RunInstancesInput, optFns ...func(*ec2.Options)) (*ec2.RunInstancesOutput, error)
	DescribeInstances(ctx context.Context, in *ec2.DescribeInstancesInput, optFns ...func(*ec2.Options)) (*ec2.DescribeInstancesOutput, error)
	TerminateInstances(ctx context.Context, in *ec2.TerminateInstancesInput, optFns ...func(*ec2.Options)) (*ec2.TerminateInstancesOutput, error)
	StartInstances(ctx context.Context, in *ec2.StartInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StartInstancesOutput, error)
	StopInstances(ctx context.Context, in *ec2.StopInstancesInput, optFns ...func(*ec2.Options)) (*ec2.StopInstancesOutput, error)
}

// Client implements cloud.Provider on EC2.
type Client struct {
	ec2      EC2API
	region   string
	timeouts *gconfig.Timeouts
}

var _ cloud.Provider = (*Client)(nil)

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeouts sets custom timeouts for the client.
func WithTimeouts(t *gconfig.Timeouts) ClientOption {
	return func(c *Client) {
		c.timeouts = t
	}
}

// WithEC2Client sets a custom EC2 client (useful for testing).
func WithEC2Client(api EC2API) ClientOption {
	return func(c *Client) {
		c.ec2 = api
	}
}

// NewClient creates a Client for region using the default AWS credential
// chain.
func NewClient(ctx context.Context, region string, opts ...ClientOption) (*Client, error) {
	c := &Client{
		region:   region,
		timeouts: gconfig.LoadTimeouts(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.ec2 != nil {
		return c, nil
	}

	cfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	c.ec2 = ec2.NewFromConfig(cfg)
	return c, nil
}

// Name implements cloud.Provider.
func (c *Client) Name() string {
	return cloud.ProviderAWS
}

// Region returns the configured region.
func (c *Client) Region() string {
	return c.region
}

func filter(name string, values ...string) types.Filter {
	return types.Filter{Name: aws.String(name), Values: values}
}
