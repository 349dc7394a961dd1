package provisioning

import (
	"context"

	"github.com/go-logr/logr"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/storage"
	"github.com/imamik/gamehost/internal/util/naming"
	"github.com/imamik/gamehost/pkg/cloud"
)

// Context wraps all dependencies and state needed for a provisioning phase.
type Context struct {
	context.Context
	Config   *config.Config
	State    *State
	Record   *Record
	Infra    cloud.Infrastructure
	Storage  ObjectStore
	Observer Observer

	// StorageOptions are passed to the storage resolver.
	StorageOptions []storage.Option
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithObserver sets the observer. The default discards events.
func WithObserver(o Observer) ContextOption {
	return func(c *Context) {
		c.Observer = o
	}
}

// WithRecord seeds the context with a previously saved record.
func WithRecord(r *Record) ContextOption {
	return func(c *Context) {
		c.Record = r
	}
}

// WithStorageOptions configures the storage resolver.
func WithStorageOptions(opts ...storage.Option) ContextOption {
	return func(c *Context) {
		c.StorageOptions = append(c.StorageOptions, opts...)
	}
}

// NewContext creates a new provisioning context.
func NewContext(ctx context.Context, cfg *config.Config, infra cloud.Infrastructure, store ObjectStore, opts ...ContextOption) *Context {
	c := &Context{
		Context:  ctx,
		Config:   cfg,
		State:    NewState(),
		Infra:    infra,
		Storage:  store,
		Observer: NewLogObserver(logr.Discard()),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.Record == nil {
		c.Record = &Record{}
	}
	return c
}

// RecordPath is the state file of the deployment.
func (c *Context) RecordPath() string {
	return RecordPathFor(c.Config)
}

// EnvFilePath is the runtime environment file of the deployment.
func (c *Context) EnvFilePath() string {
	return naming.EnvFile(c.Config.StateDir, c.Config.Prefix)
}

// SaveRecord persists the record when a state directory is configured.
func (c *Context) SaveRecord() error {
	if c.Config.StateDir == "" {
		return nil
	}
	return c.Record.Save(c.RecordPath())
}

// RecordPathFor is the state file of the deployment configured by cfg.
func RecordPathFor(cfg *config.Config) string {
	return naming.StateFile(cfg.StateDir, cfg.Prefix)
}
