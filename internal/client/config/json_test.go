package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url": "http://api.example/v1",
		"log_level":    "info",
		"storage_keys": map[string]any{"user": "profile"},
	})

	t.Run("overlays present fields only", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "http://api.example/v1", cfg.APIBaseURL)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, DefaultSessionDSN, cfg.SessionDSN)
		assert.Equal(t, "profile", cfg.StorageKeys.User)
		assert.Equal(t, "access_token", cfg.StorageKeys.AccessToken)
		assert.False(t, cfg.Trace)
	})

	t.Run("trace switch", func(t *testing.T) {
		on := writeTempJSON(t, map[string]any{"trace": true})
		cfg := &Config{}
		require.NoError(t, parseJSON(cfg, []string{"-c", on}))
		assert.True(t, cfg.Trace)

		off := writeTempJSON(t, map[string]any{"trace": false})
		require.NoError(t, parseJSON(cfg, []string{"-c", off}))
		assert.False(t, cfg.Trace)
	})

	t.Run("no config flag → no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "keep"}
		require.NoError(t, parseJSON(cfg, []string{"-u", "x"}))
		assert.Equal(t, "keep", cfg.APIBaseURL)
	})

	t.Run("invalid JSON → error", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file → error", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"api_base_url": "http://from-json",
		"session_dsn":  "json.db",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-u", "http://from-flag"})
	require.NoError(t, err)
	assert.Equal(t, "http://from-flag", cfg.APIBaseURL)
	assert.Equal(t, "json.db", cfg.SessionDSN)
}
