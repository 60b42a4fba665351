package configuration

import (
	"os"
	"path/filepath"
	"testing"

	"kycadmin/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "app:\n  log_level: info\n"))

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, DefaultAPIBaseURL, config.API.BaseURL)
	assert.Equal(t, 0, config.API.TimeoutSeconds)
	assert.Equal(t, 3000, config.App.Port)
	assert.Equal(t, UploadTargetAPI, config.Upload.Target)
	assert.Equal(t, ProviderMemory, config.Events.Type)
	assert.Equal(t, "kycadmin-notifications", config.Events.Queues[EventsNotifications].Name)
	assert.Equal(t, ProviderLog, config.Notifier.Type)
	assert.Equal(t, ProviderNone, config.Activity.Type)
	assert.False(t, config.Tracing.Enabled)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfigFile(t, `
api:
  base_url: http://kyc.internal:9000/api
  timeout_seconds: 15
notifier:
  type: filesystem
activity:
  type: filesystem
  filesystem:
    directory: /var/lib/kycadmin/activity
`)
	t.Setenv("CONFIG_FILE_PATH", path)
	t.Setenv("APP__PORT", "8181")
	t.Setenv("APP__ALLOWED_ORIGINS", "http://a.example, http://b.example")

	config, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://kyc.internal:9000/api", config.API.BaseURL)
	assert.Equal(t, 15, config.API.TimeoutSeconds)
	assert.Equal(t, 8181, config.App.Port)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, config.App.AllowedOrigins)
	require.NotNil(t, config.Notifier.Filesystem)
	assert.Equal(t, "data/notifications", config.Notifier.Filesystem.Directory)
	require.NotNil(t, config.Activity.Filesystem)
	assert.Equal(t, "/var/lib/kycadmin/activity", config.Activity.Filesystem.Directory)
}

func TestLoad_InvalidUploadTarget(t *testing.T) {
	t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "upload:\n  target: ftp\n"))

	_, err := Load()
	assert.Error(t, err)
}

func TestValidate_StorageTargetRequiresStorage(t *testing.T) {
	t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, "upload:\n  target: storage\n"))

	_, err := Load()
	assert.ErrorIs(t, err, ErrStorageRequired)
}

func TestValidate_MinioStorage(t *testing.T) {
	t.Setenv("CONFIG_FILE_PATH", writeConfigFile(t, `
upload:
  target: storage
storage:
  type: minio
  minio:
    endpoint: localhost:9000
    access_key: minio
    secret_key: minio123
`))

	config, err := Load()
	require.NoError(t, err)
	require.NotNil(t, config.Storage.Minio)
	assert.Equal(t, "us-east-1", config.Storage.Minio.Region)
}

func TestAPIConfiguration_Timeout(t *testing.T) {
	c := models.APIConfiguration{TimeoutSeconds: 3}
	assert.Equal(t, "3s", c.Timeout().String())
}
