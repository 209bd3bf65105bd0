package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, dir, name string, data map[string]any) string {
	t.Helper()
	if dir == "" {
		dir = t.TempDir()
	}
	if name == "" {
		name = "cfg.json"
	}
	path := filepath.Join(dir, name)
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	dir := t.TempDir()
	path := writeTempJSON(t, dir, "flag.json", map[string]any{
		"api_base_url":    "https://api.example.com",
		"websocket_url":   "wss://api.example.com",
		"request_timeout": 20000000000,
		"locale":          "en-US",
	})

	t.Run("loads from -config", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "https://api.example.com", cfg.APIBaseURL)
		assert.Equal(t, "wss://api.example.com", cfg.WebSocketURL)
		assert.Equal(t, 20*time.Second, cfg.RequestTimeout)
		assert.Equal(t, "en-US", cfg.Locale)
		assert.Equal(t, "text", cfg.LogFormat, "absent fields keep their value")
	})

	t.Run("no flag, no changes", func(t *testing.T) {
		cfg := &Config{APIBaseURL: "http://defaults:1234"}
		require.NoError(t, parseJSON(cfg, []string{"-a", "x"}))
		assert.Equal(t, "http://defaults:1234", cfg.APIBaseURL)
	})

	t.Run("invalid JSON", func(t *testing.T) {
		bad := filepath.Join(dir, "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ this is not valid json`), 0o600))
		require.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		require.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(dir, "nope.json")}))
	})
}
