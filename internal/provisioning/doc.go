// Package provisioning runs the operator-driven deployment of a game server.
//
// # Phases
//
//   - validation: configuration checks and warnings
//   - placement: binds the network and selects subnets
//   - storage: reuses the recorded bucket or creates one
//   - assets: uploads the bootstrap script and the status page template
//   - plan: builds the immutable InstanceSpec
//   - apply: ensures the security group and the instance, replacing an
//     instance whose fingerprint differs
//
// # Core Types
//
// Context carries configuration, the deployment Record, the provider and
// the object store. State accumulates the results of each phase. The
// Record is written to the state directory after every successful phase so
// a failed run resumes with the same bucket.
package provisioning
