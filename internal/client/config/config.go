package config

import "time"

// Config holds runtime settings for the docwatch CLI.
type Config struct {
	// APIBaseURL is the REST root, e.g. http://localhost:8000.
	APIBaseURL string
	// WebSocketURL is the push channel root, e.g. ws://localhost:8000.
	WebSocketURL   string
	RequestTimeout time.Duration
	LogLevel       string
	// LogFormat is "text" (slog) or "json" (zap).
	LogFormat string
	// Locale is a BCP 47 tag used for collation when sorting.
	Locale string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000"
	c.WebSocketURL = "ws://localhost:8000"
	c.RequestTimeout = 15 * time.Second
	c.LogLevel = "warn"
	c.LogFormat = "text"
	c.Locale = "pt-BR"
}

// LoadConfig applies defaults, then the JSON file named by -c/-config (if
// any), then command-line flags. Later sources take precedence.
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
