// Package orchestrator drives the game server instance to running and
// resolves its public address.
//
// An Orchestrator is bound to one instance id at construction and holds no
// mutable state, so a single value serves concurrent requests.
package orchestrator

import (
	"context"
	"time"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/imamik/gamehost/pkg/cloud"
)

// DefaultGraceDelay is the pause between issuing the start and describing
// the instance.
const DefaultGraceDelay = 5 * time.Second

// Platform is the subset of the provider used on the start path.
type Platform interface {
	StartInstance(ctx context.Context, id string) (any, error)
	DescribeInstance(ctx context.Context, id string) (*cloud.Description, error)
}

// Observer is notified of every state transition.
type Observer func(from, to State)

// Orchestrator starts one fixed instance.
type Orchestrator struct {
	platform   Platform
	instanceID string
	graceDelay time.Duration
	sleep      func(ctx context.Context, d time.Duration) error
	log        logr.Logger
	tracer     trace.Tracer
	observer   Observer
}

// Option configures an Orchestrator.
type Option func(*Orchestrator)

// WithGraceDelay overrides DefaultGraceDelay.
func WithGraceDelay(d time.Duration) Option {
	return func(o *Orchestrator) {
		o.graceDelay = d
	}
}

// WithSleep replaces the context-aware wait. Tests use it to skip the delay.
func WithSleep(fn func(ctx context.Context, d time.Duration) error) Option {
	return func(o *Orchestrator) {
		o.sleep = fn
	}
}

// WithLogger sets the logger.
func WithLogger(log logr.Logger) Option {
	return func(o *Orchestrator) {
		o.log = log
	}
}

// WithTracer sets the tracer used for platform call spans.
func WithTracer(t trace.Tracer) Option {
	return func(o *Orchestrator) {
		o.tracer = t
	}
}

// WithObserver registers a transition hook.
func WithObserver(fn Observer) Option {
	return func(o *Orchestrator) {
		o.observer = fn
	}
}

// New creates an Orchestrator for instanceID.
func New(platform Platform, instanceID string, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		platform:   platform,
		instanceID: instanceID,
		graceDelay: DefaultGraceDelay,
		sleep:      sleepContext,
		log:        logr.Discard(),
		tracer:     otel.Tracer("github.com/imamik/gamehost/internal/orchestrator"),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// InstanceID returns the bound instance id.
func (o *Orchestrator) InstanceID() string {
	return o.instanceID
}

// Start issues a start, waits the grace delay and describes the instance
// once. Platform errors are returned inside Failed, never as a Go error.
// An empty public address is still Resolved.
func (o *Orchestrator) Start(ctx context.Context) Result {
	log := o.log.WithValues("instance", o.instanceID)
	state := StateIdle

	fail := func(err error) Result {
		at := state
		o.transition(log, state, StateFailed)
		log.Error(err, "start failed", "state", at.String())
		return Failed{Err: err, State: at}
	}

	o.transition(log, state, StateStarting)
	state = StateStarting
	if err := o.startInstance(ctx); err != nil {
		return fail(err)
	}

	if err := o.sleep(ctx, o.graceDelay); err != nil {
		return fail(err)
	}

	o.transition(log, state, StateAwaitingAddress)
	state = StateAwaitingAddress
	desc, err := o.describeInstance(ctx)
	if err != nil {
		return fail(err)
	}

	o.transition(log, state, StateResolved)
	log.Info("instance resolved", "address", desc.PublicAddress, "state", desc.State)
	return Resolved{PublicAddress: desc.PublicAddress, Description: desc.Raw}
}

func (o *Orchestrator) startInstance(ctx context.Context) error {
	ctx, span := o.tracer.Start(ctx, "orchestrator.StartInstance",
		trace.WithAttributes(attribute.String("instance.id", o.instanceID)))
	defer span.End()

	_, err := o.platform.StartInstance(ctx, o.instanceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (o *Orchestrator) describeInstance(ctx context.Context) (*cloud.Description, error) {
	ctx, span := o.tracer.Start(ctx, "orchestrator.DescribeInstance",
		trace.WithAttributes(attribute.String("instance.id", o.instanceID)))
	defer span.End()

	desc, err := o.platform.DescribeInstance(ctx, o.instanceID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if desc == nil {
		desc = &cloud.Description{InstanceID: o.instanceID}
	}
	span.SetAttributes(attribute.Bool("instance.address_known", desc.PublicAddress != ""))
	return desc, nil
}

func (o *Orchestrator) transition(log logr.Logger, from, to State) {
	log.V(1).Info("state transition", "from", from.String(), "to", to.String())
	if o.observer != nil {
		o.observer(from, to)
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
