package initializers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvHelpers(t *testing.T) {
	t.Setenv("TEST_STRING", "  value  ")
	t.Setenv("TEST_DURATION", "90m")
	t.Setenv("TEST_BAD_DURATION", "ninety")
	t.Setenv("TEST_BOOL", "true")
	t.Setenv("TEST_INT", "12")
	t.Setenv("TEST_FLOAT", "2.5")
	t.Setenv("TEST_LIST", "http://a.test, ,http://b.test")

	assert.Equal(t, "value", getEnv("TEST_STRING", "fallback"))
	assert.Equal(t, "fallback", getEnv("TEST_UNSET", "fallback"))
	assert.Equal(t, 90*time.Minute, durationEnv("TEST_DURATION", time.Hour))
	assert.Equal(t, time.Hour, durationEnv("TEST_BAD_DURATION", time.Hour))
	assert.True(t, boolEnv("TEST_BOOL", false))
	assert.False(t, boolEnv("TEST_UNSET", false))
	assert.Equal(t, 12, intEnv("TEST_INT", 1))
	assert.Equal(t, 1, intEnv("TEST_STRING", 1))
	assert.Equal(t, 2.5, floatEnv("TEST_FLOAT", 1))
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, listEnv("TEST_LIST", nil))
	assert.Equal(t, []string{"x"}, listEnv("TEST_UNSET", []string{"x"}))
}

func TestLoadConfig(t *testing.T) {
	old := Config
	defer func() { Config = old }()

	t.Setenv("APP_ENV", "production")
	t.Setenv("SECRET", "s3cret")
	t.Setenv("DEFAULT_SERVICE_DURATION", "2h")
	t.Setenv("CORS_ORIGINS", "https://admin.example.org")
	t.Setenv("PORT", "")

	LoadConfig()

	assert.True(t, Config.IsProduction())
	assert.Equal(t, "s3cret", Config.Secret)
	assert.Equal(t, 2*time.Hour, Config.DefaultServiceDuration)
	assert.Equal(t, 24*time.Hour, Config.SessionTTL)
	assert.Equal(t, []string{"https://admin.example.org"}, Config.CORSOrigins)
	assert.Equal(t, "5000", Config.Port)
}

func TestLoadEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(wd) })

	t.Run("missing file is fine", func(t *testing.T) {
		require.NoError(t, os.Chdir(t.TempDir()))
		assert.NoError(t, LoadEnv())
	})

	t.Run("file is loaded", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("CHURCH_PORTAL_TEST_KEY=from-file\n"), 0o600))
		require.NoError(t, os.Chdir(dir))
		t.Cleanup(func() { _ = os.Unsetenv("CHURCH_PORTAL_TEST_KEY") })

		require.NoError(t, LoadEnv())
		assert.Equal(t, "from-file", os.Getenv("CHURCH_PORTAL_TEST_KEY"))
	})

	t.Run("unreadable file is reported", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, ".env"), 0o700))
		require.NoError(t, os.Chdir(dir))

		assert.Error(t, LoadEnv())
	})
}
