// Package s3 provides an object storage client for Amazon S3 and
// S3-compatible services such as Hetzner Object Storage.
//
// It backs the save data bucket of a deployment, uploads the bootstrap
// script and HTML template during provisioning, and fetches the template
// at request time.
package s3
