package wizard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/imamik/gamehost/internal/config"
)

func TestWriteConfig_RoundTrip(t *testing.T) {
	t.Setenv("HCLOUD_TOKEN", "")
	t.Setenv("S3_ACCESS_KEY", "")
	t.Setenv("S3_SECRET_KEY", "")

	outputPath := filepath.Join(t.TempDir(), "gamehost.yaml")
	cfg := BuildConfig(&WizardResult{
		Provider:     "aws",
		Prefix:       "Factory",
		Region:       "eu-west-1",
		Image:        "ami-1",
		InstanceType: "m6a.xlarge",
		RestartAPI:   true,
	})

	require.NoError(t, WriteConfig(cfg, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "# gamehost configuration")
	assert.Contains(t, string(content), "gamehost provision -c "+outputPath)
	assert.Contains(t, string(content), "prefix: Factory")

	loaded, err := config.LoadFile(outputPath)
	require.NoError(t, err)
	assert.Equal(t, "Factory", loaded.Prefix)
	assert.Equal(t, "eu-west-1", loaded.Region)
	assert.True(t, loaded.RestartAPIEnabled())
}

func TestWriteConfig_OmitsSecrets(t *testing.T) {
	t.Parallel()
	outputPath := filepath.Join(t.TempDir(), "gamehost.yaml")
	cfg := &config.Config{
		Prefix:      "Factory",
		Provider:    config.ProviderHCloud,
		Region:      "fsn1",
		HCloudToken: "super-secret-token",
		Storage:     config.StorageConfig{AccessKey: "AKIA", SecretKey: "shh"},
	}

	require.NoError(t, WriteConfig(cfg, outputPath))

	content, err := os.ReadFile(outputPath)
	require.NoError(t, err)
	assert.NotContains(t, string(content), "super-secret-token")
	assert.NotContains(t, string(content), "shh")
	assert.Contains(t, string(content), "HCLOUD_TOKEN")
	assert.Equal(t, "super-secret-token", cfg.HCloudToken, "input config must not be modified")
}

func TestWriteConfig_InvalidPath(t *testing.T) {
	t.Parallel()
	err := WriteConfig(&config.Config{}, filepath.Join(t.TempDir(), "missing", "gamehost.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write file")
}

func TestConfirmOverwrite_Injected(t *testing.T) {
	orig := confirmOverwrite
	t.Cleanup(func() { confirmOverwrite = orig })

	confirmOverwrite = func(string) (bool, error) { return true, nil }
	ok, err := ConfirmOverwrite("x")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFileExists(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "f")
	assert.False(t, FileExists(path))
	require.NoError(t, os.WriteFile(path, nil, 0o600))
	assert.True(t, FileExists(path))
}
