package provisioning

import (
	"github.com/imamik/gamehost/internal/placement"
)

// PlacementPhase binds the network and selects the subnets.
type PlacementPhase struct{}

// NewPlacementPhase creates a new placement phase.
func NewPlacementPhase() *PlacementPhase {
	return &PlacementPhase{}
}

// Name implements the Phase interface.
func (p *PlacementPhase) Name() string {
	return "placement"
}

// Provision implements the Phase interface.
func (p *PlacementPhase) Provision(ctx *Context) error {
	spec, err := placement.NewResolver(ctx.Infra).Resolve(ctx, placement.Request{
		NetworkID:        ctx.Config.Network.ID,
		SubnetID:         ctx.Config.Network.SubnetID,
		AvailabilityZone: ctx.Config.Network.AvailabilityZone,
	})
	if err != nil {
		return err
	}

	ctx.State.Placement = spec
	ctx.Observer.Event(Event{
		Type:    EventResourceExists,
		Phase:   p.Name(),
		Message: "placement resolved",
		Fields: map[string]string{
			"network": spec.Network.String(),
			"subnets": spec.Subnets.String(),
		},
	})
	return nil
}
