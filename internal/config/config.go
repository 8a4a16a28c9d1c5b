// Package config holds the layered step configuration: host-wide global
// settings, per-job step settings, and the immutable effective merge of the
// two that every run decision reads from.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// PolicyCheckMode selects which libraries a compliance check evaluates.
type PolicyCheckMode string

const (
	// PolicyCheckDisabled skips the compliance check entirely.
	PolicyCheckDisabled PolicyCheckMode = "disabled"
	// PolicyCheckNew evaluates only libraries not previously seen by the catalog.
	PolicyCheckNew PolicyCheckMode = "new"
	// PolicyCheckAll evaluates every library in the inventory.
	PolicyCheckAll PolicyCheckMode = "all"
)

// Job-level tri-state sentinel: a blank or "global" value defers to the
// host-wide default for both force-update and check-policies settings.
const UseGlobal = "global"

// JobForceUpdate is the job-level value that explicitly enables force update.
const JobForceUpdate = "force"

// GlobalConfig represents the host-wide defaults shared by every job.
type GlobalConfig struct {
	ServiceURL        string          `yaml:"service_url"`
	APIToken          string          `yaml:"api_token"`
	CheckPolicies     PolicyCheckMode `yaml:"check_policies"`
	ForceUpdate       bool            `yaml:"force_update"`
	FailOnError       bool            `yaml:"fail_on_error"`
	ConnectionTimeout string          `yaml:"connection_timeout,omitempty"` // minutes, non-numeric falls back to default
	Proxy             ProxyOverride   `yaml:"proxy,omitempty"`
	History           HistoryConfig   `yaml:"history,omitempty"`
	Events            EventsConfig    `yaml:"events,omitempty"`
	Metrics           MetricsConfig   `yaml:"metrics,omitempty"`
}

// ProxyOverride is the job-independent proxy override block. When Enabled is
// false the host's own proxy configuration (if any) applies.
type ProxyOverride struct {
	Enabled  bool   `yaml:"enabled"`
	Host     string `yaml:"host,omitempty"`
	Port     string `yaml:"port,omitempty"`
	Username string `yaml:"username,omitempty"`
	Password string `yaml:"password,omitempty"`
}

// HistoryConfig enables the local run ledger.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"` // sqlite file path, ":memory:" allowed
}

// EventsConfig enables publishing run-outcome events to NATS.
type EventsConfig struct {
	Enabled bool   `yaml:"enabled"`
	NATSURL string `yaml:"nats_url,omitempty"`
	Subject string `yaml:"subject,omitempty"`
}

// MetricsConfig enables the Prometheus recorder. Path is where a one-shot
// run dumps its registry in text exposition format.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path,omitempty"`
}

// StepConfig represents the per-job settings supplied by the build step.
type StepConfig struct {
	JobAPIToken       string `yaml:"job_api_token,omitempty"`
	Product           string `yaml:"product,omitempty"`
	ProductVersion    string `yaml:"product_version,omitempty"`
	ProjectToken      string `yaml:"project_token,omitempty"`
	RequesterEmail    string `yaml:"requester_email,omitempty"`
	LibIncludes       string `yaml:"lib_includes,omitempty"`
	LibExcludes       string `yaml:"lib_excludes,omitempty"`
	MavenProjectToken string `yaml:"maven_project_token,omitempty"`
	ModuleTokens      string `yaml:"module_tokens,omitempty"`
	ModulesToInclude  string `yaml:"modules_to_include,omitempty"`
	ModulesToExclude  string `yaml:"modules_to_exclude,omitempty"`
	IgnorePomModules  bool   `yaml:"ignore_pom_modules,omitempty"`

	// Tri-state overrides: "", "global" defer to GlobalConfig; any other
	// value is authoritative for this job.
	JobForceUpdate   string `yaml:"job_force_update,omitempty"`
	JobCheckPolicies string `yaml:"job_check_policies,omitempty"`
}

// LoadGlobal reads a GlobalConfig from a yaml file, applies the environment
// overlay and defaults, and validates the result.
func LoadGlobal(path string) (*GlobalConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read global config: %w", err)
	}
	var cfg GlobalConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse global config: %w", err)
	}
	applyEnvOverlay(&cfg)
	ApplyDefaults(&cfg)
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadStep reads a StepConfig from a yaml file.
func LoadStep(path string) (*StepConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read step config: %w", err)
	}
	var cfg StepConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse step config: %w", err)
	}
	return &cfg, nil
}
