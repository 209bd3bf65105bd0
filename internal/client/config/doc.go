// Package config loads runtime configuration for the docwatch CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-a string   REST API base URL
//	-w string   WebSocket base URL
//	-t int      request timeout (seconds)
//	-l string   log level
//
// # JSON schema
//
// Durations use timex.Duration, so "15s" and integer nanoseconds both work:
//
//	{
//	  "api_base_url": "https://api.example.com",
//	  "websocket_url": "wss://api.example.com",
//	  "request_timeout": "15s",
//	  "log_level": "info",
//	  "log_format": "json",
//	  "locale": "pt-BR"
//	}
package config
