// Package aws implements the cloud contracts on Amazon EC2.
//
// The default VPC and its default-for-az subnets back automatic placement.
// The game server is a single EC2 instance with a 15 GiB root volume,
// reached through a security group that opens the game port, and found
// again by its tags.
package aws
