package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// DefaultCleanupInterval is how often idle buckets are swept.
const DefaultCleanupInterval = 5 * time.Minute

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends with "/"
	Method string        // HTTP method
	Limit  int           // maximum requests per window; <= 0 means unlimited
	Window time.Duration // refill window
	Burst  int           // bucket capacity, defaults to Limit
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// NewConfig builds a configuration with the default endpoint tiers.
func NewConfig(enabled bool, defaultLimit int, defaultWindow time.Duration, whitelist []string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    defaultLimit,
		DefaultWindow:   defaultWindow,
		CleanupInterval: DefaultCleanupInterval,
		Whitelist:       ipSet(whitelist),
		Blacklist:       map[string]bool{},
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the per-endpoint tiers.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Credential endpoints: slow brute force down
		{Path: "/login/", Method: http.MethodPost, Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/register/", Method: http.MethodPost, Limit: 5, Window: time.Minute, Burst: 3},

		// Analysis does extraction and may fetch a remote job posting
		{Path: "/analyze/", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},

		// Document renders
		{Path: "/download-", Method: http.MethodGet, Limit: 60, Window: time.Minute, Burst: 20},

		// Form writes
		{Path: "/ats-resume", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/cover-letter", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/applications", Method: http.MethodPost, Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/profile", Method: http.MethodPost, Limit: 30, Window: time.Minute, Burst: 5},
	}
}

func ipSet(ips []string) map[string]bool {
	set := make(map[string]bool, len(ips))
	for _, ip := range ips {
		if ip = strings.TrimSpace(ip); ip != "" {
			set[ip] = true
		}
	}
	return set
}
