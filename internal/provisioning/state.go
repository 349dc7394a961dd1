package provisioning

import (
	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/internal/storage"
	"github.com/imamik/gamehost/pkg/cloud"
)

// State holds the shared results of provisioning phases.
// It is progressively populated as each phase completes and is passed
// to subsequent phases that need earlier results.
type State struct {
	Placement placement.Spec
	Storage   storage.Handle

	// Asset keys in the storage bucket. TemplateKey is empty when the start
	// endpoint is disabled.
	ScriptKey   string
	TemplateKey string

	Spec            *planner.InstanceSpec
	SecurityGroupID string
	Instance        *cloud.Instance

	// Replaced is set when apply deleted an instance with a stale
	// fingerprint.
	Replaced bool
}

// NewState creates an empty provisioning state.
func NewState() *State {
	return &State{}
}
