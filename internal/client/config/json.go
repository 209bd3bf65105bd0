package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/docwatch/internal/flagx"
	"github.com/dmitrijs2005/docwatch/internal/timex"
)

// JSONConfig is the on-disk form. Zero fields leave the current value in
// place, so a file may set only what it needs.
type JSONConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	WebSocketURL   string         `json:"websocket_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	LogLevel       string         `json:"log_level"`
	LogFormat      string         `json:"log_format"`
	Locale         string         `json:"locale"`
}

// parseJSON overlays cfg with the file named by -c/-config. Without either
// flag it does nothing.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}
	var jc JSONConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	setString(&cfg.WebSocketURL, jc.WebSocketURL)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogFormat, jc.LogFormat)
	setString(&cfg.Locale, jc.Locale)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
