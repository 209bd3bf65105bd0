package config

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "http://localhost:8000", c.APIBaseURL)
	assert.Equal(t, "ws://localhost:8000", c.WebSocketURL)
	assert.Equal(t, 15*time.Second, c.RequestTimeout)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "pt-BR", c.Locale)
}

func TestLoadConfig_NoArgsGivesDefaults(t *testing.T) {
	cfg, err := LoadConfig(nil)
	require.NoError(t, err)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, cfg))
}

func TestLoadConfig_FlagsOverrideJSON(t *testing.T) {
	path := writeTempJSON(t, t.TempDir(), "", map[string]any{
		"api_base_url":    "http://from-json:8000",
		"request_timeout": "30s",
		"log_format":      "json",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", "http://from-flag:9000", "-l", "debug"})
	require.NoError(t, err)

	assert.Equal(t, "http://from-flag:9000", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "ws://localhost:8000", cfg.WebSocketURL)
}

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    Config
		wantErr bool
	}{
		{
			name: "all flags",
			args: []string{"-a", "https://api.example.com", "-w", "wss://api.example.com", "-t", "5", "-l", "error"},
			want: Config{
				APIBaseURL:     "https://api.example.com",
				WebSocketURL:   "wss://api.example.com",
				RequestTimeout: 5 * time.Second,
				LogLevel:       "error",
			},
		},
		{
			name: "unknown flags ignored",
			args: []string{"-x", "1", "-t", "7"},
			want: Config{RequestTimeout: 7 * time.Second},
		},
		{name: "timeout not a number", args: []string{"-t", "abc"}, wantErr: true},
		{name: "timeout zero", args: []string{"-t", "0"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{RequestTimeout: time.Second}
			err := parseFlags(cfg, tt.args)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(&tt.want, cfg))
		})
	}
}
