// Package proxy decides whether outbound service calls route through a proxy
// and with which credentials, layering the job-level override over the host's
// own proxy settings.
package proxy

import (
	"net/url"
	"strconv"
	"strings"

	"git.home.luguber.info/inful/ossgate/internal/config"
	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
)

// HostProxy is the host environment's proxy configuration, when one exists.
type HostProxy struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Decision is the resolved proxy outcome threaded into the service client's
// construction.
type Decision struct {
	UseProxy bool
	Host     string
	Port     int
	Username string
	Password string
}

// NoProxy is the decision when no proxy applies.
var NoProxy = Decision{}

// Configured reports whether a proxy applies for this run: either the job
// explicitly overrides proxy settings, or the host reports one configured.
func Configured(cfg config.EffectiveConfig, host *HostProxy) bool {
	return cfg.ProxyOverride.Enabled || host != nil
}

// Resolve determines the proxy settings for a run where Configured returned
// true. When deferring to host settings the host proxy must exist; its
// absence while no override was requested is an internal configuration fault.
// When Configured is false, callers use NoProxy and never reach Resolve.
func Resolve(cfg config.EffectiveConfig, host *HostProxy) (Decision, error) {
	override := cfg.ProxyOverride

	var d Decision
	d.UseProxy = true
	if override.Enabled {
		d.Host = override.Host
		d.Port = parsePort(override.Port)
		d.Username = override.Username
		d.Password = override.Password
	} else {
		if host == nil {
			return NoProxy, gerrors.ConfigFault("host proxy settings expected but absent")
		}
		d.Host = host.Host
		d.Port = host.Port
		d.Username = host.Username
		d.Password = host.Password
	}

	d.Host = stripScheme(d.Host)
	return d, nil
}

// parsePort returns 0 for a blank or malformed port string.
func parsePort(raw string) int {
	if strings.TrimSpace(raw) == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0
	}
	return n
}

// stripScheme keeps only the host component when the configured value parses
// as a URL. A parse failure is non-fatal: the raw string is kept verbatim.
// TODO: a raw value that never parses reaches the dialer unchanged; decide
// whether that fallback should instead be rejected at validation time.
func stripScheme(host string) string {
	u, err := url.Parse(host)
	if err != nil || u.Host == "" {
		return host
	}
	return u.Hostname()
}
