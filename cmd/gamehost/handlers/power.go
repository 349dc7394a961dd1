package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/imamik/gamehost/internal/orchestrator"
	"github.com/imamik/gamehost/internal/render"
)

// startGraceDelay is the pause between start and describe.
var startGraceDelay = orchestrator.DefaultGraceDelay

// Start starts the recorded server the same way the endpoint does and
// prints its address.
func Start(ctx context.Context, configPath string) error {
	provider, id, err := recordedProvider(ctx, configPath)
	if err != nil {
		return err
	}

	orch := orchestrator.New(provider, id,
		orchestrator.WithGraceDelay(startGraceDelay),
		orchestrator.WithLogger(newCLILogger(stderr)),
	)
	switch res := orch.Start(ctx).(type) {
	case orchestrator.Resolved:
		address := res.PublicAddress
		if address == "" {
			address = render.AddressPlaceholder
		}
		fmt.Fprintf(stdout, "%s\n  Address: %s\n", render.SuccessTitle, address)
		return nil
	case orchestrator.Failed:
		return fmt.Errorf("failed to start %s while %s: %w", id, res.State, res.Err)
	default:
		return fmt.Errorf("start of %s produced no result", id)
	}
}

// Stop stops the recorded server.
func Stop(ctx context.Context, configPath string) error {
	provider, id, err := recordedProvider(ctx, configPath)
	if err != nil {
		return err
	}

	if _, err := provider.StopInstance(ctx, id); err != nil {
		return fmt.Errorf("failed to stop %s: %w", id, err)
	}
	fmt.Fprintf(stdout, "Stopping %s.\n", id)
	return nil
}

// Status prints the state and address of the recorded server. With
// jsonOutput the raw provider description is printed instead.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	provider, id, err := recordedProvider(ctx, configPath)
	if err != nil {
		return err
	}

	desc, err := provider.DescribeInstance(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to describe %s: %w", id, err)
	}

	if jsonOutput {
		data, err := json.MarshalIndent(desc.Raw, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode description: %w", err)
		}
		fmt.Fprintln(stdout, string(data))
		return nil
	}

	address := desc.PublicAddress
	if address == "" {
		address = "-"
	}
	fmt.Fprintf(stdout, "Instance: %s\n", desc.InstanceID)
	fmt.Fprintf(stdout, "State:    %s\n", desc.State)
	fmt.Fprintf(stdout, "Address:  %s\n", address)
	return nil
}
