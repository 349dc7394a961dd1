// Package retry provides exponential backoff retry logic for transient
// provider failures.
//
// [WithExponentialBackoff] retries an operation with configurable max
// attempts, initial delay and maximum delay. Provisioning uses it for
// eventually consistent reads right after a create and for resources
// locked by a running action. The start path never retries.
package retry
