// Package config loads server settings from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/olgasafonova/monumenten-mcp-server/internal/base"
)

// Config holds registry connection and logging settings
type Config struct {
	// Endpoint is the SPARQL endpoint for BAG and RCE queries
	Endpoint string

	// Timeout for registry requests
	Timeout time.Duration

	// UserAgent identifies the server to the registries
	UserAgent string

	// LogLevel is the minimum level logged
	LogLevel slog.Level
}

// LoadConfig loads configuration from environment variables.
// Every setting is optional; invalid values are reported as errors.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		Endpoint:  base.DefaultEndpoint,
		Timeout:   base.DefaultTimeout,
		UserAgent: base.DefaultUserAgent,
		LogLevel:  slog.LevelInfo,
	}

	if e := os.Getenv("MONUMENTEN_SPARQL_ENDPOINT"); e != "" {
		u, err := url.Parse(e)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return nil, fmt.Errorf("MONUMENTEN_SPARQL_ENDPOINT must be an http(s) URL, got %q", e)
		}
		cfg.Endpoint = e
	}

	if t := os.Getenv("MONUMENTEN_TIMEOUT"); t != "" {
		d, err := time.ParseDuration(t)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("MONUMENTEN_TIMEOUT must be a positive duration, got %q", t)
		}
		cfg.Timeout = d
	}

	if ua := os.Getenv("MONUMENTEN_USER_AGENT"); ua != "" {
		cfg.UserAgent = ua
	}

	if l := os.Getenv("MCP_LOG_LEVEL"); l != "" {
		level, err := ParseLogLevel(l)
		if err != nil {
			return nil, err
		}
		cfg.LogLevel = level
	}

	return cfg, nil
}

// ParseLogLevel maps debug, info, warn/warning and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error", "critical":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("MCP_LOG_LEVEL must be one of debug, info, warn, error; got %q", s)
	}
}

// ClientOptions returns the base client options for this configuration.
func (c *Config) ClientOptions(logger *slog.Logger) []base.ClientOption {
	return []base.ClientOption{
		base.WithEndpoint(c.Endpoint),
		base.WithTimeout(c.Timeout),
		base.WithUserAgent(c.UserAgent),
		base.WithLogger(logger),
	}
}
