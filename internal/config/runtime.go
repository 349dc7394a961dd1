package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Defaults of the start endpoint.
const (
	DefaultListenAddr      = ":8080"
	DefaultStartGraceDelay = 5 * time.Second
	DefaultStartTimeout    = 20 * time.Second
)

// Runtime is the configuration of `gamehost serve`, read once from the
// environment at process start.
type Runtime struct {
	InstanceID string `env:"INSTANCE_ID"`
	Provider   string `env:"PROVIDER" envDefault:"aws"`
	Region     string `env:"AWS_REGION"`

	TemplateBucket string `env:"HTML_TEMPLATE_S3_BUCKET"`
	TemplateKey    string `env:"HTML_TEMPLATE_S3_KEY"`
	// TemplateFile serves the template from disk instead of object storage.
	TemplateFile string `env:"HTML_TEMPLATE_FILE"`

	S3Endpoint  string `env:"S3_ENDPOINT"`
	S3AccessKey string `env:"S3_ACCESS_KEY"`
	S3SecretKey string `env:"S3_SECRET_KEY"`
	HCloudToken string `env:"HCLOUD_TOKEN"`

	ListenAddr      string        `env:"LISTEN_ADDR" envDefault:":8080"`
	StartGraceDelay time.Duration `env:"START_GRACE_DELAY" envDefault:"5s"`
	StartTimeout    time.Duration `env:"START_TIMEOUT" envDefault:"20s"`
	OTelEndpoint    string        `env:"GAMEHOST_OTEL_ENDPOINT"`
}

// LoadRuntime parses and validates the runtime configuration.
func LoadRuntime() (*Runtime, error) {
	rt := &Runtime{}
	if err := ParseEnv(rt); err != nil {
		return nil, err
	}
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return rt, nil
}

// LoadRuntimeFrom parses the runtime configuration from vars instead of the
// process environment.
func LoadRuntimeFrom(vars map[string]string) (*Runtime, error) {
	rt := &Runtime{}
	if err := env.ParseWithOptions(rt, env.Options{Environment: vars}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := rt.Validate(); err != nil {
		return nil, err
	}
	return rt, nil
}

// Validate checks the runtime configuration.
func (r *Runtime) Validate() error {
	if r.InstanceID == "" {
		return fmt.Errorf("INSTANCE_ID is required")
	}
	switch r.Provider {
	case ProviderAWS:
		if r.Region == "" {
			return fmt.Errorf("AWS_REGION is required")
		}
	case ProviderHCloud:
		if r.HCloudToken == "" {
			return fmt.Errorf("HCLOUD_TOKEN is required for provider hcloud")
		}
	default:
		return fmt.Errorf("PROVIDER %q is not supported", r.Provider)
	}
	if r.TemplateFile == "" && (r.TemplateBucket == "" || r.TemplateKey == "") {
		return fmt.Errorf("HTML_TEMPLATE_S3_BUCKET and HTML_TEMPLATE_S3_KEY are required unless HTML_TEMPLATE_FILE is set")
	}
	if r.StartTimeout <= 0 {
		return fmt.Errorf("START_TIMEOUT must be positive")
	}
	if r.StartGraceDelay < 0 || r.StartGraceDelay >= r.StartTimeout {
		return fmt.Errorf("START_GRACE_DELAY (%s) must be shorter than START_TIMEOUT (%s)", r.StartGraceDelay, r.StartTimeout)
	}
	return nil
}

// Environ returns the non-empty settings as KEY=value lines, sorted by key.
func (r *Runtime) Environ() []string {
	vars := map[string]string{
		"INSTANCE_ID":             r.InstanceID,
		"PROVIDER":                r.Provider,
		"AWS_REGION":              r.Region,
		"HTML_TEMPLATE_S3_BUCKET": r.TemplateBucket,
		"HTML_TEMPLATE_S3_KEY":    r.TemplateKey,
		"HTML_TEMPLATE_FILE":      r.TemplateFile,
		"S3_ENDPOINT":             r.S3Endpoint,
		"S3_ACCESS_KEY":           r.S3AccessKey,
		"S3_SECRET_KEY":           r.S3SecretKey,
		"HCLOUD_TOKEN":            r.HCloudToken,
		"LISTEN_ADDR":             r.ListenAddr,
		"GAMEHOST_OTEL_ENDPOINT":  r.OTelEndpoint,
	}
	// A zero grace delay is valid, so it is written with the timeout.
	if r.StartTimeout > 0 {
		vars["START_GRACE_DELAY"] = r.StartGraceDelay.String()
		vars["START_TIMEOUT"] = r.StartTimeout.String()
	}

	lines := make([]string, 0, len(vars))
	for k, v := range vars {
		if v != "" {
			lines = append(lines, k+"="+v)
		}
	}
	sort.Strings(lines)
	return lines
}

// WriteEnvFile writes Environ to path, readable by the owner only.
func (r *Runtime) WriteEnvFile(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	content := strings.Join(r.Environ(), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return fmt.Errorf("failed to write env file: %w", err)
	}
	return nil
}
