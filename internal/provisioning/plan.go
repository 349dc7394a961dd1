package provisioning

import (
	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/internal/util/labels"
	"github.com/imamik/gamehost/internal/util/naming"
)

// PlanPhase builds the InstanceSpec from the resolved placement and
// storage.
type PlanPhase struct{}

// NewPlanPhase creates a new plan phase.
func NewPlanPhase() *PlanPhase {
	return &PlanPhase{}
}

// Name implements the Phase interface.
func (p *PlanPhase) Name() string {
	return "plan"
}

// Provision implements the Phase interface.
func (p *PlanPhase) Provision(ctx *Context) error {
	cfg := ctx.Config

	src := planner.BootstrapSource{
		Bucket:   ctx.State.Storage.Name,
		Key:      naming.BootstrapScriptKey,
		Endpoint: cfg.StorageEndpoint(),
	}
	// Without an instance profile the instance authenticates with the
	// storage keys.
	if cfg.InstanceProfile == "" {
		src.AccessKey = cfg.Storage.AccessKey
		src.SecretKey = cfg.Storage.SecretKey
	}

	spec, err := planner.Plan(planner.Input{
		Prefix:                 cfg.Prefix,
		Provider:               cfg.Provider,
		Region:                 cfg.Region,
		ImageID:                cfg.Image,
		InstanceSize:           cfg.InstanceType,
		InstanceProfile:        cfg.InstanceProfile,
		Placement:              ctx.State.Placement,
		Storage:                ctx.State.Storage,
		UseExperimentalChannel: cfg.UseExperimentalBuild,
		RestartAPIEnabled:      cfg.RestartAPIEnabled(),
		Bootstrap:              src,
		Labels:                 labels.Selector(cfg.Prefix, labels.RoleGameServer),
	})
	if err != nil {
		return err
	}
	spec.Labels[labels.KeyFingerprint] = spec.Fingerprint()

	ctx.State.Spec = spec
	return nil
}
