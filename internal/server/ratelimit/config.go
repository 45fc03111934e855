package ratelimit

import (
	"time"

	"github.com/jonathan/resume-matcher/internal/config"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	DefaultBurst    int
	CleanupInterval time.Duration
	IdleTimeout     time.Duration // Buckets unused for this long are dropped
	Whitelist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// FromSettings builds a limiter config from the server.rate_limit settings.
func FromSettings(s config.RateLimitConfig) *Config {
	return &Config{
		Enabled:         s.Enabled,
		DefaultLimit:    s.RequestsPerMinute,
		DefaultWindow:   time.Minute,
		DefaultBurst:    s.Burst,
		CleanupInterval: 5 * time.Minute,
		IdleTimeout:     time.Hour,
		Whitelist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(s.RequestsPerMinute, s.Burst),
	}
}

// DefaultEndpointConfigs returns the endpoint-specific limits derived from the
// per-minute default. Document analysis parses uploads and runs the language
// model, so it gets a quarter of the default budget.
func DefaultEndpointConfigs(perMinute, burst int) []EndpointConfig {
	return []EndpointConfig{
		{Path: "/analyze", Method: "POST", Limit: max(1, perMinute/4), Window: time.Minute, Burst: max(1, burst/2)},
	}
}
