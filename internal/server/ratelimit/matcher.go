package ratelimit

import (
	"strings"
)

// unlimitedPaths are never rate limited.
var unlimitedPaths = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Exact matches win over prefixes. A configured path ending in "/" or "-"
// matches any path it prefixes. Returns nil when nothing matches.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimitedPaths[path] && method == "GET" {
		return &unlimited
	}

	for i := range configs {
		if configs[i].Path == path && configs[i].Method == method {
			return &configs[i]
		}
	}

	for i := range configs {
		c := &configs[i]
		if c.Method != method || !isPrefixPattern(c.Path) {
			continue
		}
		if strings.HasPrefix(path, c.Path) {
			return c
		}
	}

	return nil
}

func isPrefixPattern(p string) bool {
	return strings.HasSuffix(p, "/") || strings.HasSuffix(p, "-")
}
