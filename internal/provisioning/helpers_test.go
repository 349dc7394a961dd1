package provisioning

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/imamik/gamehost/internal/config"
	"github.com/imamik/gamehost/internal/storage"
	"github.com/imamik/gamehost/pkg/cloud/fakes"
)

const testTemplate = "<title>{{TITLE}}</title>{{CONTENT}}"

type mockObjectStore struct {
	BucketExistsFunc func(ctx context.Context, name string) (bool, error)
	CreateBucketFunc func(ctx context.Context, name string) error
	PutObjectFunc    func(ctx context.Context, bucket, key, contentType string, data []byte) error
}

func (m *mockObjectStore) BucketExists(ctx context.Context, name string) (bool, error) {
	if m.BucketExistsFunc != nil {
		return m.BucketExistsFunc(ctx, name)
	}
	return true, nil
}

func (m *mockObjectStore) CreateBucket(ctx context.Context, name string) error {
	if m.CreateBucketFunc != nil {
		return m.CreateBucketFunc(ctx, name)
	}
	return nil
}

func (m *mockObjectStore) PutObject(ctx context.Context, bucket, key, contentType string, data []byte) error {
	if m.PutObjectFunc != nil {
		return m.PutObjectFunc(ctx, bucket, key, contentType, data)
	}
	return nil
}

// memoryStore keeps buckets and objects in memory.
type memoryStore struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string]string
	created []string
}

func newMemoryStore() *memoryStore {
	return &memoryStore{buckets: map[string]bool{}, objects: map[string]string{}}
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
	m.created = append(m.created, name)
	return nil
}

func (m *memoryStore) PutObject(_ context.Context, bucket, key, _ string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[bucket+"/"+key] = string(data)
	return nil
}

type recordingObserver struct {
	mu     sync.Mutex
	events []Event
}

func (r *recordingObserver) Event(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *recordingObserver) WithFields(map[string]string) Observer { return r }

func (r *recordingObserver) ofType(t EventType) []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []Event
	for _, e := range r.events {
		if e.Type == t {
			out = append(out, e)
		}
	}
	return out
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	script := filepath.Join(dir, "install.sh")
	template := filepath.Join(dir, "html-template.html")
	require.NoError(t, os.WriteFile(script, []byte("#!/bin/bash\necho install\n"), 0o600))
	require.NoError(t, os.WriteFile(template, []byte(testTemplate), 0o600))

	return &config.Config{
		Prefix:          "SatisfactoryHosting",
		Provider:        config.ProviderAWS,
		Region:          "eu-central-1",
		Image:           "ami-0123456789abcdef0",
		InstanceType:    "m6a.xlarge",
		InstanceProfile: "satisfactory-profile",
		Bootstrap: config.BootstrapConfig{
			Script:   script,
			Template: template,
		},
		StateDir: filepath.Join(dir, "state"),
	}
}

func newTestContext(t *testing.T, cfg *config.Config, infra *fakes.FakeProvider, store ObjectStore, opts ...ContextOption) *Context {
	t.Helper()
	opts = append([]ContextOption{WithStorageOptions(storage.WithNameGenerator(func() string {
		return "satisfactoryhosting-saves-test"
	}))}, opts...)
	return NewContext(context.Background(), cfg, infra, store, opts...)
}
