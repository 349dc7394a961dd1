package provisioning

import (
	"github.com/imamik/gamehost/internal/storage"
)

// StoragePhase binds or creates the save data bucket. A configured bucket
// name wins over the recorded one.
type StoragePhase struct {
	dryRun bool
}

// NewStoragePhase creates a new storage phase.
func NewStoragePhase() *StoragePhase {
	return &StoragePhase{}
}

// NewDryRunStoragePhase creates a storage phase that binds an existing
// bucket but never creates one. A generated name is not recorded.
func NewDryRunStoragePhase() *StoragePhase {
	return &StoragePhase{dryRun: true}
}

// Name implements the Phase interface.
func (p *StoragePhase) Name() string {
	return "storage"
}

// Provision implements the Phase interface.
func (p *StoragePhase) Provision(ctx *Context) error {
	existing := ctx.Config.Storage.BucketName
	if existing == "" {
		existing = ctx.Record.StorageName
	}

	opts := append([]storage.Option{}, ctx.StorageOptions...)
	if p.dryRun {
		opts = append(opts, storage.WithDryRun())
	}
	handle, err := storage.NewResolver(ctx.Storage, ctx.Config.Prefix, opts...).Resolve(ctx, existing)
	if err != nil {
		return err
	}

	ctx.State.Storage = handle
	if handle.Pending {
		LogResourcePlanned(ctx.Observer, p.Name(), "bucket", handle.Name)
		return nil
	}

	ctx.Record.StorageName = handle.Name
	if handle.Created {
		LogResourceCreated(ctx.Observer, p.Name(), "bucket", handle.Name, handle.Name)
	} else {
		LogResourceExists(ctx.Observer, p.Name(), "bucket", handle.Name, handle.Name)
	}
	return nil
}
