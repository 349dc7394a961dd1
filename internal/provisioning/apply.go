package provisioning

import (
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/util/labels"
	"github.com/imamik/gamehost/internal/util/naming"
	"github.com/imamik/gamehost/pkg/cloud"
)

// ApplyPhase ensures the security group and the instance. The security
// group and the instance lookup run concurrently. An instance whose
// fingerprint label differs from the planned one is replaced, never
// modified.
type ApplyPhase struct{}

// NewApplyPhase creates a new apply phase.
func NewApplyPhase() *ApplyPhase {
	return &ApplyPhase{}
}

// Name implements the Phase interface.
func (p *ApplyPhase) Name() string {
	return "apply"
}

// Provision implements the Phase interface.
func (p *ApplyPhase) Provision(ctx *Context) error {
	spec := ctx.State.Spec
	if spec == nil {
		return fmt.Errorf("no instance spec planned")
	}
	prefix := ctx.Config.Prefix

	var (
		sgID     string
		existing *cloud.Instance
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sgID, err = ctx.Infra.EnsureSecurityGroup(gctx, naming.SecurityGroup(prefix), spec.Placement.Network,
			spec.SecurityRules, labels.Selector(prefix, labels.RoleFirewall))
		if err != nil {
			return fmt.Errorf("failed to ensure security group: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		existing, err = ctx.Infra.FindInstance(gctx, labels.Selector(prefix, labels.RoleGameServer))
		if err != nil {
			return fmt.Errorf("failed to look up instance: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}
	ctx.State.SecurityGroupID = sgID
	ctx.Record.SecurityGroupID = sgID

	fingerprint := spec.Labels[labels.KeyFingerprint]
	switch {
	case existing != nil && existing.Labels[labels.KeyFingerprint] == fingerprint:
		LogResourceExists(ctx.Observer, p.Name(), "instance", spec.Name, existing.ID)
		ctx.State.Instance = existing
	default:
		if existing != nil {
			if err := ctx.Infra.DeleteInstance(ctx, existing.ID); err != nil {
				return fmt.Errorf("failed to replace instance %s: %w", existing.ID, err)
			}
			LogResourceDeleted(ctx.Observer, p.Name(), "instance", existing.ID)
			ctx.State.Replaced = true
		}
		inst, err := ctx.Infra.CreateInstance(ctx, spec, sgID)
		if err != nil {
			return fmt.Errorf("failed to create instance: %w", err)
		}
		LogResourceCreated(ctx.Observer, p.Name(), "instance", spec.Name, inst.ID)
		ctx.State.Instance = inst
	}

	ctx.Record.InstanceID = ctx.State.Instance.ID
	ctx.Record.Fingerprint = fingerprint

	if spec.StartEndpoint {
		return p.writeRuntime(ctx)
	}
	return nil
}

// writeRuntime writes the environment of `gamehost serve`.
func (p *ApplyPhase) writeRuntime(ctx *Context) error {
	if ctx.Config.StateDir == "" {
		return nil
	}
	cfg := ctx.Config
	rt := &config.Runtime{
		InstanceID:      ctx.State.Instance.ID,
		Provider:        cfg.Provider,
		Region:          cfg.Region,
		TemplateBucket:  ctx.Record.TemplateBucket,
		TemplateKey:     ctx.Record.TemplateKey,
		S3Endpoint:      cfg.StorageEndpoint(),
		S3AccessKey:     cfg.Storage.AccessKey,
		S3SecretKey:     cfg.Storage.SecretKey,
		ListenAddr:      config.DefaultListenAddr,
		StartGraceDelay: config.DefaultStartGraceDelay,
		StartTimeout:    config.DefaultStartTimeout,
	}
	if cfg.Provider == config.ProviderHCloud {
		rt.HCloudToken = cfg.HCloudToken
	}

	path := ctx.EnvFilePath()
	if err := rt.WriteEnvFile(path); err != nil {
		return err
	}
	ctx.Observer.Event(Event{
		Type:     EventResourceCreated,
		Phase:    p.Name(),
		Resource: path,
		Message:  "runtime environment written",
	})
	return nil
}
