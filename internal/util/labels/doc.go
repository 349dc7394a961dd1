// Package labels provides the labels and tags that mark gamehost resources.
//
// Labels identify the resources of one deployment on both providers: they
// become Hetzner labels on hcloud and resource tags on aws. Instances are
// found again by these labels, and the fingerprint label records which
// InstanceSpec an instance was created from.
package labels
