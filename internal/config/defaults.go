package config

import "strconv"

// DefaultConnectionTimeoutMinutes matches the agent client default used when
// the configured timeout is blank, non-numeric, or non-positive.
const DefaultConnectionTimeoutMinutes = 60

// ApplyDefaults fills in host-wide defaults for omitted fields.
func ApplyDefaults(cfg *GlobalConfig) {
	if cfg.CheckPolicies == "" {
		cfg.CheckPolicies = PolicyCheckDisabled
	} else if m := NormalizePolicyCheckMode(string(cfg.CheckPolicies)); m != "" {
		cfg.CheckPolicies = m
	} else {
		cfg.CheckPolicies = PolicyCheckDisabled
	}
	if cfg.Events.Enabled && cfg.Events.Subject == "" {
		cfg.Events.Subject = "ossgate.runs"
	}
	if cfg.History.Enabled && cfg.History.Path == "" {
		cfg.History.Path = "ossgate-history.db"
	}
	if cfg.Metrics.Enabled && cfg.Metrics.Path == "" {
		cfg.Metrics.Path = "ossgate-metrics.prom"
	}
}

// NormalizePolicyCheckMode maps a raw string to a PolicyCheckMode, returning
// "" for unrecognized values. Legacy values from older job definitions
// ("enableNew", "enableAll") are accepted.
func NormalizePolicyCheckMode(raw string) PolicyCheckMode {
	switch raw {
	case string(PolicyCheckDisabled):
		return PolicyCheckDisabled
	case string(PolicyCheckNew), "enableNew":
		return PolicyCheckNew
	case string(PolicyCheckAll), "enableAll":
		return PolicyCheckAll
	default:
		return ""
	}
}

// ConnectionTimeoutMinutes parses the configured timeout, falling back to the
// default when the value is blank, malformed, or non-positive.
func (c *GlobalConfig) ConnectionTimeoutMinutes() int {
	n, err := strconv.Atoi(c.ConnectionTimeout)
	if err != nil || n <= 0 {
		return DefaultConnectionTimeoutMinutes
	}
	return n
}
