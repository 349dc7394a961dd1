// Package storage resolves the object storage location that backs save data
// for a deployment.
//
// A deployment is backed by exactly one location, addressed by name. Reuse
// is by exact name only; the resolver never searches for a "similar"
// bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
)

// ErrStorageNotFound is returned when an existing location was requested by
// name but does not exist.
var ErrStorageNotFound = errors.New("storage location not found")

// BucketStore is the subset of the object storage client used here.
type BucketStore interface {
	BucketExists(ctx context.Context, name string) (bool, error)
	CreateBucket(ctx context.Context, name string) error
}

// Handle is a resolved storage location.
type Handle struct {
	Name    string
	Created bool
	// Pending is set by a dry run: Name was generated but nothing was
	// created.
	Pending bool
}

// Resolver binds or creates the storage location.
type Resolver struct {
	store    BucketStore
	generate func() string
	dryRun   bool
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithNameGenerator overrides how new location names are generated.
func WithNameGenerator(fn func() string) Option {
	return func(r *Resolver) {
		r.generate = fn
	}
}

// WithDryRun makes Resolve report the name it would create instead of
// creating it. Existing names are still looked up.
func WithDryRun() Option {
	return func(r *Resolver) {
		r.dryRun = true
	}
}

// NewResolver creates a resolver. New locations are named after prefix.
func NewResolver(store BucketStore, prefix string, opts ...Option) *Resolver {
	r := &Resolver{
		store:    store,
		generate: func() string { return GenerateName(prefix) },
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve binds existingName when set, otherwise creates a new location
// with a generated unique name. Granting the instance access to the
// location is left to the caller.
func (r *Resolver) Resolve(ctx context.Context, existingName string) (Handle, error) {
	if existingName != "" {
		exists, err := r.store.BucketExists(ctx, existingName)
		if err != nil {
			return Handle{}, fmt.Errorf("failed to look up storage %s: %w", existingName, err)
		}
		if !exists {
			return Handle{}, fmt.Errorf("%w: %s", ErrStorageNotFound, existingName)
		}
		return Handle{Name: existingName}, nil
	}

	name := r.generate()
	if r.dryRun {
		return Handle{Name: name, Pending: true}, nil
	}
	if err := r.store.CreateBucket(ctx, name); err != nil {
		return Handle{}, fmt.Errorf("failed to create storage: %w", err)
	}
	return Handle{Name: name, Created: true}, nil
}
