package config

import "strings"

// ResolveBaseURL decides which backend base URL all API calls target, given
// the hostname the client is being served from. hostname may be empty when no
// request context exists (the CLI), in which case resolution falls through to
// the override/local rules.
//
// Precedence, in order:
//
//  1. A non-local hostname (any deployed domain) always resolves to the
//     configured production backend, even when an override is set.
//  2. An override is honored only when it itself points at localhost or
//     127.0.0.1.
//  3. Otherwise the local default wins.
//
// Rule 1 makes a non-localhost override unreachable: a custom backend URL for
// any deployed environment other than the configured production one is
// silently ignored. Preserved as-is; see DESIGN.md.
func (c BackendConfig) ResolveBaseURL(hostname string) string {
	if hostname != "" && !isLocalHostname(hostname) && c.ProductionURL != "" {
		return c.ProductionURL
	}

	if c.OverrideURL != "" && containsLocalHost(c.OverrideURL) {
		return c.OverrideURL
	}

	return c.LocalURL
}

func isLocalHostname(hostname string) bool {
	return hostname == "localhost" || hostname == "127.0.0.1"
}

func containsLocalHost(u string) bool {
	return strings.Contains(u, "localhost") || strings.Contains(u, "127.0.0.1")
}
