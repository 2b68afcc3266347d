package ratelimit

import (
	"net/http"
	"strings"
)

// unlimitedEndpoints are never throttled: probes and scrapers poll them on a schedule.
var unlimitedEndpoints = map[string]bool{
	"/health":  true,
	"/metrics": true,
}

var unlimited = EndpointConfig{}

// MatchEndpoint matches a request path and method to an endpoint configuration.
// Returns the matching EndpointConfig or nil if no match is found.
// Path matching supports prefix matching for patterns ending in "/".
func MatchEndpoint(path string, method string, configs []EndpointConfig) *EndpointConfig {
	if method == http.MethodGet && unlimitedEndpoints[path] {
		u := unlimited
		u.Path, u.Method = path, method
		return &u
	}

	for i := range configs {
		if configs[i].Method == method && configs[i].Path == path {
			return &configs[i]
		}
	}

	var best *EndpointConfig
	for i := range configs {
		c := &configs[i]
		if c.Method != method || !strings.HasSuffix(c.Path, "/") || !strings.HasPrefix(path, c.Path) {
			continue
		}
		// Longest prefix wins.
		if best == nil || len(c.Path) > len(best.Path) {
			best = c
		}
	}
	return best
}
