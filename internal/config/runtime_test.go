package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func awsRuntimeVars() map[string]string {
	return map[string]string{
		"INSTANCE_ID":             "i-0abc",
		"AWS_REGION":              "eu-west-1",
		"HTML_TEMPLATE_S3_BUCKET": "saves",
		"HTML_TEMPLATE_S3_KEY":    "assets/html-template.html",
	}
}

func TestLoadRuntimeFrom_Defaults(t *testing.T) {
	t.Parallel()
	rt, err := LoadRuntimeFrom(awsRuntimeVars())
	require.NoError(t, err)

	assert.Equal(t, "i-0abc", rt.InstanceID)
	assert.Equal(t, ProviderAWS, rt.Provider)
	assert.Equal(t, ":8080", rt.ListenAddr)
	assert.Equal(t, 5*time.Second, rt.StartGraceDelay)
	assert.Equal(t, 20*time.Second, rt.StartTimeout)
}

func TestLoadRuntimeFrom_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(map[string]string)
		wantErr string
	}{
		{"missing instance", func(v map[string]string) { delete(v, "INSTANCE_ID") }, "INSTANCE_ID"},
		{"missing region", func(v map[string]string) { delete(v, "AWS_REGION") }, "AWS_REGION"},
		{"missing template", func(v map[string]string) { delete(v, "HTML_TEMPLATE_S3_KEY") }, "HTML_TEMPLATE_S3_KEY"},
		{"unknown provider", func(v map[string]string) { v["PROVIDER"] = "gcp" }, "not supported"},
		{"hcloud without token", func(v map[string]string) { v["PROVIDER"] = "hcloud" }, "HCLOUD_TOKEN"},
		{"bad duration", func(v map[string]string) { v["START_TIMEOUT"] = "soon" }, "parse env"},
		{"grace equals timeout", func(v map[string]string) { v["START_GRACE_DELAY"] = "20s" }, "must be shorter"},
		{"grace exceeds timeout", func(v map[string]string) {
			v["START_GRACE_DELAY"] = "10s"
			v["START_TIMEOUT"] = "5s"
		}, "must be shorter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			vars := awsRuntimeVars()
			tt.mutate(vars)
			_, err := LoadRuntimeFrom(vars)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadRuntimeFrom_TemplateFile(t *testing.T) {
	t.Parallel()
	vars := awsRuntimeVars()
	delete(vars, "HTML_TEMPLATE_S3_BUCKET")
	delete(vars, "HTML_TEMPLATE_S3_KEY")
	vars["HTML_TEMPLATE_FILE"] = "assets/html-template.html"

	rt, err := LoadRuntimeFrom(vars)
	require.NoError(t, err)
	assert.Equal(t, "assets/html-template.html", rt.TemplateFile)
}

func TestLoadRuntime_FromProcessEnv(t *testing.T) {
	for k, v := range awsRuntimeVars() {
		t.Setenv(k, v)
	}
	t.Setenv("START_GRACE_DELAY", "2s")

	rt, err := LoadRuntime()
	require.NoError(t, err)
	assert.Equal(t, 2*time.Second, rt.StartGraceDelay)
}

func TestRuntime_WriteEnvFileRoundTrip(t *testing.T) {
	t.Parallel()
	rt, err := LoadRuntimeFrom(awsRuntimeVars())
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), ".gamehost", "SatisfactoryHosting.env")
	require.NoError(t, rt.WriteEnvFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "INSTANCE_ID=i-0abc\n")
	assert.NotContains(t, string(data), "HCLOUD_TOKEN=")

	vars := map[string]string{}
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		k, v, ok := strings.Cut(line, "=")
		require.True(t, ok)
		vars[k] = v
	}
	again, err := LoadRuntimeFrom(vars)
	require.NoError(t, err)
	assert.Equal(t, rt, again)
}

func TestRuntime_EnvironKeepsZeroGraceDelay(t *testing.T) {
	t.Parallel()
	vars := awsRuntimeVars()
	vars["START_GRACE_DELAY"] = "0s"
	rt, err := LoadRuntimeFrom(vars)
	require.NoError(t, err)
	require.Zero(t, rt.StartGraceDelay)

	env := rt.Environ()
	assert.Contains(t, env, "START_GRACE_DELAY=0s")

	reloaded := map[string]string{}
	for _, line := range env {
		k, v, _ := strings.Cut(line, "=")
		reloaded[k] = v
	}
	again, err := LoadRuntimeFrom(reloaded)
	require.NoError(t, err)
	assert.Zero(t, again.StartGraceDelay)
	assert.Equal(t, DefaultStartTimeout, again.StartTimeout)
}
