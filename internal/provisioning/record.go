package provisioning

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Record is the persisted outcome of provisioning runs of one deployment.
type Record struct {
	Prefix          string    `yaml:"prefix"`
	Provider        string    `yaml:"provider"`
	Region          string    `yaml:"region"`
	StorageName     string    `yaml:"storage_name,omitempty"`
	InstanceID      string    `yaml:"instance_id,omitempty"`
	Fingerprint     string    `yaml:"fingerprint,omitempty"`
	SecurityGroupID string    `yaml:"security_group_id,omitempty"`
	TemplateBucket  string    `yaml:"template_bucket,omitempty"`
	TemplateKey     string    `yaml:"template_key,omitempty"`
	UpdatedAt       time.Time `yaml:"updated_at,omitempty"`
}

// LoadRecord reads the record at path. A missing file yields an empty
// record.
func LoadRecord(path string) (*Record, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return &Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	var r Record
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to parse state file %s: %w", path, err)
	}
	return &r, nil
}

// Save writes the record to path, creating the directory.
func (r *Record) Save(path string) error {
	r.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("failed to write state file: %w", err)
	}
	return nil
}
