// Package config defines and loads all configuration structures for the
// analytics slide generation service. No I/O or parsing logic lives in this
// file — only plain data types and validation; loader.go owns parsing.
package config

import (
	"fmt"
	"time"
)

// ─────────────────────────────────────────────────────────────────────────────
// Sub-configuration structs
// ─────────────────────────────────────────────────────────────────────────────

// ServerConfig holds HTTP server tunables.
type ServerConfig struct {
	Port            int           `mapstructure:"port"`
	Mode            string        `mapstructure:"mode"` // "debug" | "release" | "test"
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	MaxBodySize     int64         `mapstructure:"max_body_size"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// RequestTimeout bounds the whole validate→resolve→shape→generate→assemble
	// pipeline for a single request. ANALYTICS_SERVER_REQUEST_TIMEOUT in the
	// environment.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
}

// LLMConfig holds the configuration for the outbound insight-generation call.
type LLMConfig struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`

	// SoftTimeout is the deadline for a single LLM call on the request path:
	// past this point the call is abandoned and the fallback text is used.
	SoftTimeout time.Duration `mapstructure:"soft_timeout"`
	// HardTimeout is the deadline past which the call is cancelled outright.
	HardTimeout time.Duration `mapstructure:"hard_timeout"`
}

// RateLimitConfig holds the per-client-IP token-bucket parameters applied to
// every HTTP route.
type RateLimitConfig struct {
	PerMinute int `mapstructure:"per_minute"`
	Burst     int `mapstructure:"burst"`
}

// LayoutConfig holds slide-layout presentation defaults.
type LayoutConfig struct {
	DefaultTheme string `mapstructure:"default_theme"` // professional | corporate | vibrant
}

// LogConfig mirrors internal/logging.LogConfig with mapstructure tags so it
// can be populated directly by viper before being handed to logging.NewLogger.
type LogConfig struct {
	Level            string   `mapstructure:"level"`
	Format           string   `mapstructure:"format"`
	OutputPaths      []string `mapstructure:"output_paths"`
	ErrorOutputPaths []string `mapstructure:"error_output_paths"`
}

// ChartDataStoreConfig holds connection parameters for the external editor
// persistence collaborator the core calls through the chartdata.Store
// interface. No server-side client is built from these settings: BaseURL is
// handed to the browser-side chart editor, which is enabled only when
// BaseURL is set.
type ChartDataStoreConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Root Config
// ─────────────────────────────────────────────────────────────────────────────

// Config is the root configuration structure for the analytics slide service.
type Config struct {
	Server       ServerConfig         `mapstructure:"server"`
	LLM          LLMConfig            `mapstructure:"llm"`
	RateLimit    RateLimitConfig      `mapstructure:"rate_limit"`
	Layout       LayoutConfig         `mapstructure:"layout"`
	Log          LogConfig            `mapstructure:"log"`
	ChartDataStore ChartDataStoreConfig `mapstructure:"chart_data_store"`
}

// ─────────────────────────────────────────────────────────────────────────────
// Validation
// ─────────────────────────────────────────────────────────────────────────────

// Validate performs semantic validation of the fully-populated Config. It
// returns the first error encountered; callers should treat any error as
// fatal and refuse to start the service.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config: server.port %d is out of range [1, 65535]", c.Server.Port)
	}
	switch c.Server.Mode {
	case "debug", "release", "test":
	default:
		return fmt.Errorf("config: server.mode %q is invalid; expected debug|release|test", c.Server.Mode)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("config: server.request_timeout must be positive")
	}

	if c.LLM.SoftTimeout <= 0 {
		return fmt.Errorf("config: llm.soft_timeout must be positive")
	}
	if c.LLM.HardTimeout <= 0 {
		return fmt.Errorf("config: llm.hard_timeout must be positive")
	}
	if c.LLM.HardTimeout < c.LLM.SoftTimeout {
		return fmt.Errorf("config: llm.hard_timeout must be >= llm.soft_timeout")
	}
	if c.LLM.Model == "" {
		return fmt.Errorf("config: llm.model is required")
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("config: rate_limit.per_minute must be >= 0, got %d", c.RateLimit.PerMinute)
	}
	if c.RateLimit.Burst < 1 {
		return fmt.Errorf("config: rate_limit.burst must be >= 1, got %d", c.RateLimit.Burst)
	}

	switch c.Layout.DefaultTheme {
	case "professional", "corporate", "vibrant":
	default:
		return fmt.Errorf("config: layout.default_theme %q is invalid; expected professional|corporate|vibrant", c.Layout.DefaultTheme)
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: log.level %q is invalid; expected debug|info|warn|error", c.Log.Level)
	}
	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("config: log.format %q is invalid; expected json|console", c.Log.Format)
	}

	return nil
}
