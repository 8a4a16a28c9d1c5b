package config

import (
	"crypto/sha256"
	"encoding/hex"
	"strconv"
	"strings"
)

// EffectiveConfig is the once-computed merge of a StepConfig with the
// GlobalConfig. It is immutable after construction; every run decision reads
// from it and nothing re-resolves during a run.
type EffectiveConfig struct {
	Token          string
	Product        string
	ProductVersion string
	ProjectToken   string
	RequesterEmail string

	LibIncludes       string
	LibExcludes       string
	MavenProjectToken string
	ModuleTokens      string
	ModulesToInclude  string
	ModulesToExclude  string
	IgnorePomModules  bool

	ShouldCheckPolicies bool
	CheckAllLibraries   bool
	ForceUpdate         bool
	FailOnError         bool

	ServiceURL        string
	ConnectionTimeout int // minutes

	ProxyOverride ProxyOverride
	History       HistoryConfig
	Events        EventsConfig
	Metrics       MetricsConfig
}

// NewEffective merges job-level settings with host-wide defaults. The merge
// rule throughout: a blank (or explicit "global") job value defers to the
// global value, otherwise the job value wins.
func NewEffective(global *GlobalConfig, step *StepConfig) EffectiveConfig {
	eff := EffectiveConfig{
		Product:           step.Product,
		ProductVersion:    step.ProductVersion,
		ProjectToken:      step.ProjectToken,
		RequesterEmail:    step.RequesterEmail,
		LibIncludes:       step.LibIncludes,
		LibExcludes:       step.LibExcludes,
		MavenProjectToken: step.MavenProjectToken,
		ModuleTokens:      step.ModuleTokens,
		ModulesToInclude:  step.ModulesToInclude,
		ModulesToExclude:  step.ModulesToExclude,
		IgnorePomModules:  step.IgnorePomModules,
		FailOnError:       global.FailOnError,
		ServiceURL:        global.ServiceURL,
		ConnectionTimeout: global.ConnectionTimeoutMinutes(),
		ProxyOverride:     global.Proxy,
		History:           global.History,
		Events:            global.Events,
		Metrics:           global.Metrics,
	}

	eff.Token = resolveString(step.JobAPIToken, global.APIToken)

	mode := resolveCheckMode(step.JobCheckPolicies, global.CheckPolicies)
	eff.ShouldCheckPolicies = mode == PolicyCheckNew || mode == PolicyCheckAll
	eff.CheckAllLibraries = mode == PolicyCheckAll

	eff.ForceUpdate = resolveForceUpdate(step.JobForceUpdate, global.ForceUpdate)

	return eff
}

// resolveString returns the job value unless blank, in which case the global
// value applies.
func resolveString(job, global string) string {
	if strings.TrimSpace(job) != "" {
		return job
	}
	return global
}

// resolveCheckMode applies the two-level override for the check-policies mode.
func resolveCheckMode(job string, global PolicyCheckMode) PolicyCheckMode {
	if strings.TrimSpace(job) == "" || job == UseGlobal {
		return global
	}
	if m := NormalizePolicyCheckMode(job); m != "" {
		return m
	}
	// Unrecognized job value: treat as disabled rather than guessing.
	return PolicyCheckDisabled
}

// resolveForceUpdate applies the two-level override for force update: blank or
// "global" defers to the host default, "force" enables, anything else
// explicitly disables.
func resolveForceUpdate(job string, global bool) bool {
	if strings.TrimSpace(job) == "" || job == UseGlobal {
		return global
	}
	return job == JobForceUpdate
}

// Snapshot computes a stable hash of the decision-affecting merged fields.
// Two merges from identical inputs always produce identical snapshots.
func (c EffectiveConfig) Snapshot() string {
	h := sha256.New()
	w := func(parts ...string) { h.Write([]byte(strings.Join(parts, "="))); h.Write([]byte{0}) }
	w("token", c.Token)
	w("product", c.Product)
	w("product_version", c.ProductVersion)
	w("project_token", c.ProjectToken)
	w("requester", c.RequesterEmail)
	w("lib_includes", c.LibIncludes)
	w("lib_excludes", c.LibExcludes)
	w("maven_project_token", c.MavenProjectToken)
	w("module_tokens", c.ModuleTokens)
	w("modules_include", c.ModulesToInclude)
	w("modules_exclude", c.ModulesToExclude)
	w("ignore_pom", strconv.FormatBool(c.IgnorePomModules))
	w("check_policies", strconv.FormatBool(c.ShouldCheckPolicies))
	w("check_all", strconv.FormatBool(c.CheckAllLibraries))
	w("force_update", strconv.FormatBool(c.ForceUpdate))
	w("fail_on_error", strconv.FormatBool(c.FailOnError))
	w("service_url", c.ServiceURL)
	w("timeout", strconv.Itoa(c.ConnectionTimeout))
	w("proxy.enabled", strconv.FormatBool(c.ProxyOverride.Enabled))
	w("proxy.host", c.ProxyOverride.Host)
	w("proxy.port", c.ProxyOverride.Port)
	return hex.EncodeToString(h.Sum(nil))
}
