package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// unsetenv clears keys for the duration of the test.
func unsetenv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}
}

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	unsetenv(t, "GETIMG_MODEL", "GETIMG_BASE_URL", "GETIMG_TIMEOUT", "GETIMG_LOG_LEVEL", "GETIMG_LOG_FORMAT")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "lcm-realistic-vision-v5-1", cfg.Model)
	assert.Equal(t, "https://api.getimg.ai/v1", cfg.BaseURL)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Zero(t, cfg.Timeout)
}

func TestLoadEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("GETIMG_API_KEY", "key-from-env")
	t.Setenv("GETIMG_MODEL", "realvis")
	t.Setenv("GETIMG_TIMEOUT", "90s")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "key-from-env", cfg.APIKey)
	assert.Equal(t, "realvis", cfg.Model)
	assert.Equal(t, 90*time.Second, cfg.Timeout)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("GETIMG_API_KEY_PARAM=/getimg/key\n"), 0600))
	unsetenv(t, "GETIMG_API_KEY_PARAM")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "/getimg/key", cfg.APIKeyParam)
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	unsetenv(t, "GETIMG_MODEL", "GETIMG_PROXY", "GETIMG_LOG_LEVEL")
	path := filepath.Join(dir, "getimg.yml")
	require.NoError(t, os.WriteFile(path, []byte("model: from-file\nproxy: socks5://127.0.0.1:1080\nlog:\n  level: debug\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Model)
	assert.Equal(t, "socks5://127.0.0.1:1080", cfg.Proxy)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadMissingFile(t *testing.T) {
	chdir(t, t.TempDir())
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}
