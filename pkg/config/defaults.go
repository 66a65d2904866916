// Package config defines default configuration and tunables for the analyzer.
package config

import "time"

// AnalyzerConfig defines settings for the analysis pipeline.
type AnalyzerConfig struct {
	// SettleDelay is the debounce interval after the last content change
	// before a recomputation runs.
	SettleDelay time.Duration `mapstructure:"settle_delay"`
	// SessionDir is the root for session hand-off artifacts.
	SessionDir string `mapstructure:"session_dir"`
}

// EndpointConfig defines outbound service endpoints.
type EndpointConfig struct {
	// NarrativeURL is the scoring collaborator base URL. Empty selects the
	// built-in offline scorer.
	NarrativeURL string `mapstructure:"narrative_url"`
	// ExecutorURL is the fix apply/rollback endpoint base URL.
	ExecutorURL string `mapstructure:"executor_url"`
	// Timeout bounds each outbound request.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Defaults.
const (
	DefaultRegion   = "us-east-1"
	DefaultProvider = "aws"
	DefaultMode     = "comprehensive"
)

// DefaultAnalyzerConfig returns a configuration with sensible default values.
func DefaultAnalyzerConfig() AnalyzerConfig {
	return AnalyzerConfig{
		SettleDelay: 500 * time.Millisecond,
		SessionDir:  ".stackstage/session",
	}
}

// DefaultEndpointConfig returns default endpoint settings.
func DefaultEndpointConfig() EndpointConfig {
	return EndpointConfig{
		Timeout: 60 * time.Second,
	}
}
