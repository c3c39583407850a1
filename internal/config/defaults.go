package config

import "time"

// ─────────────────────────────────────────────────────────────────────────────
// Default value constants
// ─────────────────────────────────────────────────────────────────────────────

const (
	DefaultServerPort = 8080
	DefaultServerMode = "debug"

	// DefaultRequestTimeout is REQUEST_TIMEOUT_S's default (30s) per the
	// external interfaces contract.
	DefaultRequestTimeout = 30 * time.Second

	// DefaultLLMModel is the small, fast default model named by the external
	// interfaces contract for LLM_MODEL.
	DefaultLLMModel = "gpt-4o-mini"

	// DefaultInsightSoftTimeout is INSIGHT_SOFT_TIMEOUT_S's default.
	DefaultInsightSoftTimeout = 10 * time.Second
	// DefaultInsightHardTimeout is the hard ceiling past which the LLM call
	// is cancelled outright, per §4.4.
	DefaultInsightHardTimeout = 30 * time.Second

	DefaultRateLimitPerMinute = 60
	DefaultRateLimitBurst     = 10

	DefaultTheme = "professional"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"

	DefaultChartDataStoreTimeout = 5 * time.Second
)

// ─────────────────────────────────────────────────────────────────────────────
// ApplyDefaults fills zero-value fields in cfg with well-known defaults.
// It must be called after unmarshalling raw config data and before Validate()
// so optional-but-defaulted fields are never seen as missing.
// ─────────────────────────────────────────────────────────────────────────────

// ApplyDefaults fills every zero-value field in cfg with the service default.
// Fields already set by the caller (non-zero values) are left unchanged so
// explicit configuration always wins.
func ApplyDefaults(cfg *Config) {
	if cfg == nil {
		return
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = DefaultServerPort
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = DefaultServerMode
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = DefaultRequestTimeout
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.LLM.Model == "" {
		cfg.LLM.Model = DefaultLLMModel
	}
	if cfg.LLM.SoftTimeout == 0 {
		cfg.LLM.SoftTimeout = DefaultInsightSoftTimeout
	}
	if cfg.LLM.HardTimeout == 0 {
		cfg.LLM.HardTimeout = DefaultInsightHardTimeout
	}

	if cfg.RateLimit.PerMinute == 0 {
		cfg.RateLimit.PerMinute = DefaultRateLimitPerMinute
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = DefaultRateLimitBurst
	}

	if cfg.Layout.DefaultTheme == "" {
		cfg.Layout.DefaultTheme = DefaultTheme
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = DefaultLogLevel
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = DefaultLogFormat
	}

	if cfg.ChartDataStore.Timeout == 0 {
		cfg.ChartDataStore.Timeout = DefaultChartDataStoreTimeout
	}
}
