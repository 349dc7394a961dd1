package provisioning

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/gamehost/internal/util/naming"
	"github.com/imamik/gamehost/pkg/cloud/fakes"
)

type stubPhase struct {
	name string
	err  error
	ran  *[]string
}

func (s stubPhase) Name() string { return s.name }

func (s stubPhase) Provision(*Context) error {
	*s.ran = append(*s.ran, s.name)
	return s.err
}

func parseEnv(content string) map[string]string {
	vars := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(content), "\n") {
		k, v, ok := strings.Cut(line, "=")
		if ok {
			vars[k] = v
		}
	}
	return vars
}

func TestPipeline_StopsAtFirstFailure(t *testing.T) {
	t.Parallel()
	var ran []string
	obs := &recordingObserver{}
	ctx := newTestContext(t, testConfig(t), fakes.NewFakeProvider(), &mockObjectStore{}, WithObserver(obs))

	err := NewPipeline(
		stubPhase{name: "one", ran: &ran},
		stubPhase{name: "two", err: errors.New("boom"), ran: &ran},
		stubPhase{name: "three", ran: &ran},
	).Run(ctx)

	require.Error(t, err)
	assert.Equal(t, "two phase failed: boom", err.Error())
	assert.Equal(t, []string{"one", "two"}, ran)
	assert.Len(t, obs.ofType(EventPhaseFailed), 1)
}

func TestDefaultPipeline_Run(t *testing.T) {
	t.Parallel()
	cfg := testConfig(t)
	infra := fakes.NewFakeProvider()
	store := newMemoryStore()

	ctx := newTestContext(t, cfg, infra, store)
	require.NoError(t, DefaultPipeline().Run(ctx))

	assert.Equal(t, []string{"satisfactoryhosting-saves-test"}, store.created)
	assert.Contains(t, store.objects, "satisfactoryhosting-saves-test/"+naming.BootstrapScriptKey)
	require.Len(t, infra.Created, 1)

	rec, err := LoadRecord(ctx.RecordPath())
	require.NoError(t, err)
	assert.Equal(t, "SatisfactoryHosting", rec.Prefix)
	assert.Equal(t, "satisfactoryhosting-saves-test", rec.StorageName)
	assert.Equal(t, ctx.State.Instance.ID, rec.InstanceID)
	assert.Equal(t, "satisfactoryhosting-saves-test", rec.TemplateBucket)

	t.Run("second run is idempotent", func(t *testing.T) {
		ctx2 := NewContext(ctx.Context, cfg, infra, store, WithRecord(rec))
		require.NoError(t, DefaultPipeline().Run(ctx2))

		assert.Len(t, store.created, 1, "recorded bucket is reused")
		assert.Len(t, infra.Created, 1, "unchanged instance is reused")
		assert.Empty(t, infra.Deleted)
		assert.Equal(t, rec.InstanceID, ctx2.Record.InstanceID)
	})
}

func TestPlanPipeline_CreatesNothing(t *testing.T) {
	t.Parallel()
	infra := fakes.NewFakeProvider()
	store := newMemoryStore()
	ctx := newTestContext(t, testConfig(t), infra, store)

	require.NoError(t, PlanPipeline().Run(ctx))
	require.NotNil(t, ctx.State.Spec)
	assert.Empty(t, infra.Created)
	assert.Empty(t, infra.SecurityGroups)
	assert.Empty(t, store.created)
	assert.Empty(t, store.objects)
	assert.Empty(t, ctx.Record.StorageName)
	assert.Contains(t, ctx.State.Spec.UserData, "s3://satisfactoryhosting-saves-test/")
}
