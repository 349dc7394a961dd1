// Package handlers implements the business logic for CLI commands.
//
// Handlers are framework-agnostic. Every external dependency is reached
// through a factory variable that tests replace.
package handlers

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/platform/aws"
	"github.com/imamik/gamehost/internal/platform/hcloud"
	"github.com/imamik/gamehost/internal/platform/s3"
	"github.com/imamik/gamehost/internal/provisioning"
	"github.com/imamik/gamehost/internal/render"
	"github.com/imamik/gamehost/pkg/cloud"
)

// DefaultConfigFile is read when no --config flag is given.
const DefaultConfigFile = "gamehost.yaml"

// Version is reported as the service version of traces.
var Version = "dev"

// ObjectStore is the object storage used by provisioning and the endpoint.
type ObjectStore interface {
	provisioning.ObjectStore
	render.ObjectGetter
}

// Factory function variables - can be replaced in tests for dependency injection.
var (
	// loadConfigFile loads the provisioning configuration.
	loadConfigFile = config.LoadFile

	// loadRuntime loads the endpoint configuration from the environment.
	loadRuntime = config.LoadRuntime

	// loadTimeouts loads provider timeouts from the environment.
	loadTimeouts = config.LoadTimeouts

	// newProvider creates the cloud provider client.
	newProvider = func(ctx context.Context, provider, region, token string, timeouts *config.Timeouts) (cloud.Provider, error) {
		switch provider {
		case config.ProviderAWS:
			c, err := aws.NewClient(ctx, region, aws.WithTimeouts(timeouts))
			if err != nil {
				return nil, err
			}
			return c, nil
		case config.ProviderHCloud:
			return hcloud.NewClient(token, region, hcloud.WithTimeouts(timeouts)), nil
		default:
			return nil, fmt.Errorf("provider %q is not supported", provider)
		}
	}

	// newObjectStore creates the object storage client.
	newObjectStore = func(ctx context.Context, opts s3.Options) (ObjectStore, error) {
		c, err := s3.NewClient(ctx, opts)
		if err != nil {
			return nil, err
		}
		return c, nil
	}

	// stdout receives command output.
	stdout io.Writer = os.Stdout

	// stderr receives progress logs.
	stderr io.Writer = os.Stderr
)

// newCLILogger logs key/value lines for interactive commands.
func newCLILogger(w io.Writer) logr.Logger {
	return funcr.New(func(_, args string) {
		fmt.Fprintln(w, args)
	}, funcr.Options{})
}

// newJSONLogger logs one JSON object per line for the endpoint.
func newJSONLogger(w io.Writer) logr.Logger {
	return funcr.NewJSON(func(obj string) {
		fmt.Fprintln(w, obj)
	}, funcr.Options{LogTimestamp: true})
}

// loadConfig loads the configuration and the deployment record.
func loadConfig(configPath string) (*config.Config, *provisioning.Record, error) {
	cfg, err := loadConfigFile(configPath)
	if err != nil {
		return nil, nil, err
	}
	rec, err := provisioning.LoadRecord(provisioning.RecordPathFor(cfg))
	if err != nil {
		return nil, nil, err
	}
	return cfg, rec, nil
}

// newProvisioningContext wires the provider and object storage clients.
func newProvisioningContext(ctx context.Context, configPath string) (*provisioning.Context, error) {
	cfg, rec, err := loadConfig(configPath)
	if err != nil {
		return nil, err
	}

	provider, err := newProvider(ctx, cfg.Provider, cfg.Region, cfg.HCloudToken, loadTimeouts())
	if err != nil {
		return nil, fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	store, err := newObjectStore(ctx, s3.Options{
		Region:    cfg.Region,
		Endpoint:  cfg.StorageEndpoint(),
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	observer := provisioning.NewLogObserver(newCLILogger(stderr))
	return provisioning.NewContext(ctx, cfg, provider, store,
		provisioning.WithRecord(rec),
		provisioning.WithObserver(observer),
	), nil
}

// recordedProvider returns the provider client and the recorded instance.
func recordedProvider(ctx context.Context, configPath string) (cloud.Provider, string, error) {
	cfg, rec, err := loadConfig(configPath)
	if err != nil {
		return nil, "", err
	}
	if rec.InstanceID == "" {
		return nil, "", fmt.Errorf("no server recorded for %s; run 'gamehost provision' first", cfg.Prefix)
	}
	provider, err := newProvider(ctx, cfg.Provider, cfg.Region, cfg.HCloudToken, loadTimeouts())
	if err != nil {
		return nil, "", fmt.Errorf("failed to create %s client: %w", cfg.Provider, err)
	}
	return provider, rec.InstanceID, nil
}
