package handlers

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/platform/s3"
	"github.com/imamik/gamehost/internal/provisioning"
	"github.com/imamik/gamehost/pkg/cloud"
	"github.com/imamik/gamehost/pkg/cloud/fakes"
)

// memoryStore is an in-memory ObjectStore.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: map[string]bool{}, objects: map[string][]byte{}}
}

func (m *memoryStore) BucketExists(_ context.Context, name string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.buckets[name], nil
}

func (m *memoryStore) CreateBucket(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.buckets[name] = true
	return nil
}

func (m *memoryStore) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = data
	return nil
}

func (m *memoryStore) GetObject(_ context.Context, bucket, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[bucket+"/"+key]
	if !ok {
		return nil, errors.New("NoSuchKey")
	}
	return data, nil
}

// testEnv replaces the factories with in-memory fakes and captures output.
type testEnv struct {
	cfg      *config.Config
	provider *fakes.FakeProvider
	store    *memoryStore
	out      *bytes.Buffer
	errOut   *bytes.Buffer
}

func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	saveAndRestoreFactories(t)

	dir := t.TempDir()
	script := filepath.Join(dir, "install.sh")
	template := filepath.Join(dir, "html-template.html")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\n"), 0o600))
	require.NoError(t, os.WriteFile(template, []byte("<title>{{TITLE}}</title>{{CONTENT}}"), 0o600))

	env := &testEnv{
		cfg: &config.Config{
			Prefix:          "SatisfactoryHosting",
			Provider:        config.ProviderAWS,
			Region:          "eu-central-1",
			Image:           "ami-0123456789abcdef0",
			InstanceType:    "m6a.xlarge",
			InstanceProfile: "satisfactory-profile",
			Bootstrap:       config.BootstrapConfig{Script: script, Template: template},
			StateDir:        filepath.Join(dir, "state"),
		},
		provider: fakes.NewFakeProvider(),
		store:    newMemoryStore(),
		out:      &bytes.Buffer{},
		errOut:   &bytes.Buffer{},
	}

	loadConfigFile = func(string) (*config.Config, error) { return env.cfg, nil }
	newProvider = func(context.Context, string, string, string, *config.Timeouts) (cloud.Provider, error) {
		return env.provider, nil
	}
	newObjectStore = func(context.Context, s3.Options) (ObjectStore, error) {
		return env.store, nil
	}
	stdout = env.out
	stderr = env.errOut
	startGraceDelay = 0
	return env
}

// record saves a deployment record for the test config.
func (e *testEnv) record(t *testing.T, rec *provisioning.Record) {
	t.Helper()
	require.NoError(t, rec.Save(provisioning.RecordPathFor(e.cfg)))
}

func saveAndRestoreFactories(t *testing.T) {
	t.Helper()
	origLoadConfigFile := loadConfigFile
	origLoadRuntime := loadRuntime
	origLoadTimeouts := loadTimeouts
	origNewProvider := newProvider
	origNewObjectStore := newObjectStore
	origStdout := stdout
	origStderr := stderr
	origStartGraceDelay := startGraceDelay
	origIsInteractive := isInteractive
	origFileExists := fileExists
	origConfirmOverwrite := confirmOverwrite
	origRunWizard := runWizard
	origWriteConfig := writeConfig
	origSetupTracing := setupTracing
	origRunServer := runServer

	t.Cleanup(func() {
		loadConfigFile = origLoadConfigFile
		loadRuntime = origLoadRuntime
		loadTimeouts = origLoadTimeouts
		newProvider = origNewProvider
		newObjectStore = origNewObjectStore
		stdout = origStdout
		stderr = origStderr
		startGraceDelay = origStartGraceDelay
		isInteractive = origIsInteractive
		fileExists = origFileExists
		confirmOverwrite = origConfirmOverwrite
		runWizard = origRunWizard
		writeConfig = origWriteConfig
		setupTracing = origSetupTracing
		runServer = origRunServer
	})
}
