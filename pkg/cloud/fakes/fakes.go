// Package fakes provides an in-memory cloud.Provider for tests.
package fakes

import (
	"context"
	"fmt"
	"maps"
	"sync"

	"github.com/imamik/gamehost/internal/placement"
	"github.com/imamik/gamehost/internal/planner"
	"github.com/imamik/gamehost/pkg/cloud"
)

// Instance states used by the fake.
const (
	StateStopped = "stopped"
	StateRunning = "running"
)

// FakeProvider simulates a provider with one region.
//
// The Err fields inject failures into the matching call. Addresses maps an
// instance id to the public address reported once it runs; a missing entry
// reports an empty address, like a slow provider.
type FakeProvider struct {
	mu sync.Mutex

	Networks       map[string]placement.NetworkRef
	DefaultNet     *placement.NetworkRef
	Instances      map[string]*cloud.Instance
	SecurityGroups map[string][]planner.SecurityRule
	Addresses      map[string]string
	Created        []*planner.InstanceSpec
	Deleted        []string
	Starts         []string
	Describes      []string

	StartErr    error
	StopErr     error
	DescribeErr error
	CreateErr   error

	nextID int
}

var _ cloud.Provider = (*FakeProvider)(nil)

// NewFakeProvider returns a provider with a default network "net-default".
func NewFakeProvider() *FakeProvider {
	return &FakeProvider{
		Networks:       map[string]placement.NetworkRef{},
		DefaultNet:     &placement.NetworkRef{ID: "net-default"},
		Instances:      map[string]*cloud.Instance{},
		SecurityGroups: map[string][]planner.SecurityRule{},
		Addresses:      map[string]string{},
		nextID:         1,
	}
}

// Name implements cloud.Provider.
func (f *FakeProvider) Name() string { return "fake" }

// LookupNetwork implements placement.NetworkLookup.
func (f *FakeProvider) LookupNetwork(_ context.Context, id string) (placement.NetworkRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	n, ok := f.Networks[id]
	if !ok {
		return placement.NetworkRef{}, fmt.Errorf("network %s: %w", id, placement.ErrNetworkNotFound)
	}
	return n, nil
}

// DefaultNetwork implements placement.NetworkLookup.
func (f *FakeProvider) DefaultNetwork(_ context.Context) (placement.NetworkRef, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DefaultNet == nil {
		return placement.NetworkRef{}, placement.ErrNoDefaultNetwork
	}
	return *f.DefaultNet, nil
}

// EnsureSecurityGroup implements cloud.Infrastructure.
func (f *FakeProvider) EnsureSecurityGroup(_ context.Context, name string, _ placement.NetworkRef, rules []planner.SecurityRule, _ map[string]string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.SecurityGroups[name] = rules
	return "sg-" + name, nil
}

// FindInstance implements cloud.Infrastructure.
func (f *FakeProvider) FindInstance(_ context.Context, labels map[string]string) (*cloud.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, inst := range f.Instances {
		if hasLabels(inst.Labels, labels) {
			cp := *inst
			return &cp, nil
		}
	}
	return nil, nil
}

// CreateInstance implements cloud.Infrastructure.
func (f *FakeProvider) CreateInstance(_ context.Context, spec *planner.InstanceSpec, _ string) (*cloud.Instance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.CreateErr != nil {
		return nil, f.CreateErr
	}
	id := fmt.Sprintf("i-%04d", f.nextID)
	f.nextID++
	inst := &cloud.Instance{
		ID:     id,
		Name:   spec.Name,
		State:  StateRunning,
		Labels: maps.Clone(spec.Labels),
	}
	f.Instances[id] = inst
	f.Created = append(f.Created, spec)
	cp := *inst
	return &cp, nil
}

// DeleteInstance implements cloud.Infrastructure.
func (f *FakeProvider) DeleteInstance(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.Instances[id]; !ok {
		return fmt.Errorf("%w: %s", cloud.ErrInstanceNotFound, id)
	}
	delete(f.Instances, id)
	f.Deleted = append(f.Deleted, id)
	return nil
}

// StartInstance implements cloud.PowerController.
func (f *FakeProvider) StartInstance(_ context.Context, id string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Starts = append(f.Starts, id)
	if f.StartErr != nil {
		return nil, f.StartErr
	}
	inst, ok := f.Instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cloud.ErrInstanceNotFound, id)
	}
	previous := inst.State
	inst.State = StateRunning
	return map[string]string{"instance_id": id, "previous_state": previous, "current_state": StateRunning}, nil
}

// StopInstance implements cloud.PowerController.
func (f *FakeProvider) StopInstance(_ context.Context, id string) (any, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.StopErr != nil {
		return nil, f.StopErr
	}
	inst, ok := f.Instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cloud.ErrInstanceNotFound, id)
	}
	inst.State = StateStopped
	return map[string]string{"instance_id": id, "current_state": StateStopped}, nil
}

// DescribeInstance implements cloud.PowerController.
func (f *FakeProvider) DescribeInstance(_ context.Context, id string) (*cloud.Description, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Describes = append(f.Describes, id)
	if f.DescribeErr != nil {
		return nil, f.DescribeErr
	}
	inst, ok := f.Instances[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", cloud.ErrInstanceNotFound, id)
	}
	addr := ""
	if inst.State == StateRunning {
		addr = f.Addresses[id]
	}
	return &cloud.Description{
		InstanceID:    id,
		State:         inst.State,
		PublicAddress: addr,
		Raw:           map[string]string{"instance_id": id, "state": inst.State, "public_ip": addr},
	}, nil
}

// AddInstance registers an existing instance in the given state.
func (f *FakeProvider) AddInstance(id, state, address string, labels map[string]string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Instances[id] = &cloud.Instance{ID: id, State: state, Labels: labels}
	if address != "" {
		f.Addresses[id] = address
	}
}

func hasLabels(have, want map[string]string) bool {
	for k, v := range want {
		if have[k] != v {
			return false
		}
	}
	return true
}
