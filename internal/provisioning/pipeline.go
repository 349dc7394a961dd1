package provisioning

import (
	"fmt"
	"time"
)

// Pipeline runs phases in order.
type Pipeline struct {
	Phases []Phase
}

// NewPipeline creates a pipeline of the given phases.
func NewPipeline(phases ...Phase) *Pipeline {
	return &Pipeline{Phases: phases}
}

// DefaultPipeline returns every phase of a full provisioning run.
func DefaultPipeline() *Pipeline {
	return NewPipeline(
		NewValidationPhase(),
		NewPlacementPhase(),
		NewStoragePhase(),
		NewAssetsPhase(),
		NewPlanPhase(),
		NewApplyPhase(),
	)
}

// PlanPipeline returns the phases needed to compute the InstanceSpec. It
// creates nothing: a missing bucket is only named.
func PlanPipeline() *Pipeline {
	return NewPipeline(
		NewValidationPhase(),
		NewPlacementPhase(),
		NewDryRunStoragePhase(),
		NewPlanPhase(),
	)
}

// Run executes all phases sequentially and saves the record after each
// successful one. The first failure stops the run.
func (p *Pipeline) Run(ctx *Context) error {
	start := time.Now()

	for i, phase := range p.Phases {
		phaseStart := time.Now()
		obs := ctx.Observer.WithFields(map[string]string{
			"step": fmt.Sprintf("%d/%d", i+1, len(p.Phases)),
		})
		LogPhaseStart(obs, phase.Name())

		if err := phase.Provision(ctx); err != nil {
			LogPhaseFailed(obs, phase.Name(), err)
			return fmt.Errorf("%s phase failed: %w", phase.Name(), err)
		}
		if err := ctx.SaveRecord(); err != nil {
			return err
		}

		LogPhaseComplete(obs, phase.Name(), time.Since(phaseStart))
	}

	ctx.Observer.Event(Event{
		Type:    EventPhaseCompleted,
		Message: fmt.Sprintf("provisioning completed in %v", time.Since(start).Round(time.Millisecond)),
	})
	return nil
}
