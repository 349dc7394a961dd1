package labels

import (
	"maps"
	"sort"
	"strings"
)

// Standard label keys.
const (
	// KeyDeployment identifies which deployment a resource belongs to
	KeyDeployment = "gamehost.io/deployment"

	// KeyRole identifies the purpose of a resource
	KeyRole = "gamehost.io/role"

	// KeyManagedBy identifies the management system
	KeyManagedBy = "gamehost.io/managed-by"

	// KeyFingerprint records the InstanceSpec fingerprint of an instance
	KeyFingerprint = "gamehost.io/fingerprint"
)

// Role values
const (
	RoleGameServer = "game-server"
	RoleFirewall   = "firewall"
	RoleStorage    = "storage"
)

// ManagedByGamehost is the value of KeyManagedBy.
const ManagedByGamehost = "gamehost"

// LabelBuilder provides a fluent interface for building resource labels.
type LabelBuilder struct {
	labels map[string]string
}

// NewLabelBuilder creates a new label builder with the deployment pre-set.
// Hetzner label values are restricted, so the prefix is lowercased.
func NewLabelBuilder(prefix string) *LabelBuilder {
	return &LabelBuilder{
		labels: map[string]string{
			KeyDeployment: strings.ToLower(prefix),
			KeyManagedBy:  ManagedByGamehost,
		},
	}
}

// WithRole adds a role label.
func (lb *LabelBuilder) WithRole(role string) *LabelBuilder {
	lb.labels[KeyRole] = role
	return lb
}

// WithFingerprint adds the instance spec fingerprint.
func (lb *LabelBuilder) WithFingerprint(fp string) *LabelBuilder {
	if fp != "" {
		lb.labels[KeyFingerprint] = fp
	}
	return lb
}

// Merge adds all labels from the provided map.
func (lb *LabelBuilder) Merge(extra map[string]string) *LabelBuilder {
	maps.Copy(lb.labels, extra)
	return lb
}

// Build returns a copy of the labels map.
func (lb *LabelBuilder) Build() map[string]string {
	return maps.Clone(lb.labels)
}

// Selector returns the deployment and role labels used to find a resource
// again, without the fingerprint.
func Selector(prefix, role string) map[string]string {
	return NewLabelBuilder(prefix).WithRole(role).Build()
}

// SelectorString renders labels as a Hetzner label selector
// ("k1=v1,k2=v2"), sorted by key.
func SelectorString(labels map[string]string) string {
	keys := make([]string, 0, len(labels))
	for k := range labels {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + "=" + labels[k]
	}
	return strings.Join(parts, ",")
}
