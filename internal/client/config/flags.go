package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/docwatch/internal/flagx"
)

// parseFlags overlays cfg with command-line flags:
//
//	-a string   REST API base URL
//	-w string   WebSocket base URL
//	-t int      request timeout (seconds)
//	-l string   log level
//
// Args are pre-filtered with flagx.FilterArgs so unrelated flags are ignored.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-w", "-t", "-l"})

	fs := flag.NewFlagSet("docwatch", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "REST API base URL")
	fs.StringVar(&cfg.WebSocketURL, "w", cfg.WebSocketURL, "WebSocket base URL")
	timeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	if *timeout <= 0 {
		return fmt.Errorf("request timeout must be positive, got %d", *timeout)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
	return nil
}
