package provisioning

import (
	"fmt"
	"strings"

	"github.com/imamik/gamehost/internal/config"
)

// ValidationError represents a configuration validation error or warning.
type ValidationError struct {
	Field    string // Configuration field that failed validation
	Message  string // Human-readable error message
	Severity string // "error" or "warning"
}

// Error implements the error interface.
func (ve ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s: %s", ve.Severity, ve.Field, ve.Message)
}

// IsError returns true if this is an error (not a warning).
func (ve ValidationError) IsError() bool {
	return ve.Severity == "error"
}

// ValidationPhase implements the Phase interface for pre-flight validation.
type ValidationPhase struct{}

// NewValidationPhase creates a new validation phase.
func NewValidationPhase() *ValidationPhase {
	return &ValidationPhase{}
}

// Name implements the Phase interface.
func (vp *ValidationPhase) Name() string {
	return "validation"
}

// Provision implements the Phase interface.
func (vp *ValidationPhase) Provision(ctx *Context) error {
	if err := ctx.Config.Validate(); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	var errs []string
	for _, ve := range validate(ctx) {
		if ve.IsError() {
			errs = append(errs, ve.Error())
			continue
		}
		ctx.Observer.Event(Event{
			Type:    EventValidationWarning,
			Phase:   vp.Name(),
			Message: ve.Message,
			Fields:  map[string]string{"field": ve.Field},
		})
	}
	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed:\n  %s", strings.Join(errs, "\n  "))
	}

	ctx.Record.Prefix = ctx.Config.Prefix
	ctx.Record.Provider = ctx.Config.Provider
	ctx.Record.Region = ctx.Config.Region
	return nil
}

// validate runs the checks that depend on more than one field or on the
// deployment record.
func validate(ctx *Context) []ValidationError {
	var errs []ValidationError
	cfg := ctx.Config
	rec := ctx.Record

	if rec.Provider != "" && rec.InstanceID != "" && rec.Provider != cfg.Provider {
		errs = append(errs, ValidationError{
			Field:    "provider",
			Message:  fmt.Sprintf("deployment %s was provisioned on %s; destroy it before switching provider", cfg.Prefix, rec.Provider),
			Severity: "error",
		})
	}

	if cfg.Provider == config.ProviderAWS && cfg.InstanceProfile == "" &&
		(cfg.Storage.AccessKey == "" || cfg.Storage.SecretKey == "") {
		errs = append(errs, ValidationError{
			Field:    "instance_profile",
			Message:  "no instance profile and no storage keys; the instance cannot download the bootstrap script",
			Severity: "error",
		})
	}

	if cfg.Network.AvailabilityZone != "" && cfg.Network.SubnetID == "" {
		errs = append(errs, ValidationError{
			Field:    "network.availability_zone",
			Message:  "availability zone without subnet id is ignored",
			Severity: "warning",
		})
	}

	if !cfg.RestartAPIEnabled() {
		errs = append(errs, ValidationError{
			Field:    "restart_api",
			Message:  "start endpoint disabled; start the server with `gamehost start` or the provider console",
			Severity: "warning",
		})
	}

	if cfg.UseExperimentalBuild {
		errs = append(errs, ValidationError{
			Field:    "use_experimental_build",
			Message:  "the experimental game channel is installed",
			Severity: "warning",
		})
	}

	return errs
}
