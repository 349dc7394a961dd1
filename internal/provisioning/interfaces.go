package provisioning

import (
	"context"

	"github.com/imamik/gamehost/internal/storage"
)

// Phase defines the interface for a provisioning phase.
type Phase interface {
	// Name returns the human-readable name of this phase.
	Name() string

	// Provision executes the provisioning logic for this phase.
	Provision(ctx *Context) error
}

// ObjectStore is the object storage used for save data and assets.
// Implemented by internal/platform/s3.Client.
type ObjectStore interface {
	storage.BucketStore
	PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error
}
