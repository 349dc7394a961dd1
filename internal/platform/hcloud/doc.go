// Package hcloud implements the cloud contracts on Hetzner Cloud.
//
// The game server is a cloud server with a dedicated 15 GiB volume and a
// firewall for the game port. Servers are found again by label selector;
// the default network is the public network every server is attached to.
package hcloud
