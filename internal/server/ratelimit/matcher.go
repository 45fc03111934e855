package ratelimit

import (
	"net/http"
	"strings"
)

// unlimited lists routes that bypass limiting, keyed by "METHOD path".
var unlimited = map[string]bool{
	http.MethodGet + " /health": true,
}

// matches reports whether the config applies to the request. A Path ending in
// "/" covers every path below it.
func (c *EndpointConfig) matches(path, method string, prefix bool) bool {
	if c.Method != method {
		return false
	}
	if prefix {
		return strings.HasSuffix(c.Path, "/") && strings.HasPrefix(path, c.Path)
	}
	return c.Path == path
}

// MatchEndpoint returns the config for a request, preferring exact paths over
// prefixes. Unlimited routes get a zero-limit config; unknown routes get nil
// and fall back to the defaults.
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if unlimited[method+" "+path] {
		return &EndpointConfig{Path: path, Method: method}
	}
	for _, prefix := range []bool{false, true} {
		for i := range configs {
			if configs[i].matches(path, method, prefix) {
				return &configs[i]
			}
		}
	}
	return nil
}
