package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveForceUpdate(t *testing.T) {
	cases := []struct {
		name   string
		job    string
		global bool
		want   bool
	}{
		{"blank defers to global true", "", true, true},
		{"blank defers to global false", "", false, false},
		{"whitespace defers to global", "   ", true, true},
		{"global sentinel defers", "global", true, true},
		{"global sentinel defers false", "global", false, false},
		{"explicit force wins over global false", "force", false, true},
		{"explicit none wins over global true", "none", true, false},
		{"unrecognized value is explicit false", "yes please", true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := resolveForceUpdate(tc.job, tc.global)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestResolveCheckMode(t *testing.T) {
	cases := []struct {
		name      string
		job       string
		global    PolicyCheckMode
		wantCheck bool
		wantAll   bool
	}{
		{"blank defers to global disabled", "", PolicyCheckDisabled, false, false},
		{"blank defers to global new", "", PolicyCheckNew, true, false},
		{"blank defers to global all", "", PolicyCheckAll, true, true},
		{"sentinel defers to global all", "global", PolicyCheckAll, true, true},
		{"job new overrides global disabled", "new", PolicyCheckDisabled, true, false},
		{"job all overrides global new", "all", PolicyCheckNew, true, true},
		{"job disabled overrides global all", "disabled", PolicyCheckAll, false, false},
		{"legacy enableNew accepted", "enableNew", PolicyCheckDisabled, true, false},
		{"legacy enableAll accepted", "enableAll", PolicyCheckDisabled, true, true},
		{"garbage disables", "sometimes", PolicyCheckAll, false, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			global := &GlobalConfig{ServiceURL: "https://catalog.example.com", CheckPolicies: tc.global}
			step := &StepConfig{JobCheckPolicies: tc.job}
			eff := NewEffective(global, step)
			assert.Equal(t, tc.wantCheck, eff.ShouldCheckPolicies, "ShouldCheckPolicies")
			assert.Equal(t, tc.wantAll, eff.CheckAllLibraries, "CheckAllLibraries")
		})
	}
}

func TestTokenResolution(t *testing.T) {
	global := &GlobalConfig{ServiceURL: "https://catalog.example.com", APIToken: "org-token"}

	eff := NewEffective(global, &StepConfig{})
	assert.Equal(t, "org-token", eff.Token)

	eff = NewEffective(global, &StepConfig{JobAPIToken: "job-token"})
	assert.Equal(t, "job-token", eff.Token)

	eff = NewEffective(global, &StepConfig{JobAPIToken: "  "})
	assert.Equal(t, "org-token", eff.Token, "whitespace-only job token defers")
}

func TestSnapshotIdempotent(t *testing.T) {
	global := &GlobalConfig{
		ServiceURL:    "https://catalog.example.com",
		APIToken:      "org-token",
		CheckPolicies: PolicyCheckAll,
		ForceUpdate:   true,
		FailOnError:   true,
	}
	step := &StepConfig{
		Product:        "shop-backend",
		ProductVersion: "2.4.0",
		LibIncludes:    "**/*.jar",
		JobForceUpdate: "none",
	}

	first := NewEffective(global, step)
	second := NewEffective(global, step)
	require.Equal(t, first, second)
	assert.Equal(t, first.Snapshot(), second.Snapshot())

	// A decision-affecting change must alter the snapshot.
	step2 := *step
	step2.JobForceUpdate = "force"
	third := NewEffective(global, &step2)
	assert.NotEqual(t, first.Snapshot(), third.Snapshot())
}

func TestApplyDefaultsOptionalBlocks(t *testing.T) {
	cfg := &GlobalConfig{
		History: HistoryConfig{Enabled: true},
		Events:  EventsConfig{Enabled: true},
		Metrics: MetricsConfig{Enabled: true},
	}
	ApplyDefaults(cfg)
	assert.Equal(t, "ossgate-history.db", cfg.History.Path)
	assert.Equal(t, "ossgate.runs", cfg.Events.Subject)
	assert.Equal(t, "ossgate-metrics.prom", cfg.Metrics.Path)

	disabled := &GlobalConfig{}
	ApplyDefaults(disabled)
	assert.Empty(t, disabled.Metrics.Path, "no path default when metrics disabled")
}

func TestConnectionTimeoutFallback(t *testing.T) {
	cases := []struct {
		raw  string
		want int
	}{
		{"", DefaultConnectionTimeoutMinutes},
		{"abc", DefaultConnectionTimeoutMinutes},
		{"-5", DefaultConnectionTimeoutMinutes},
		{"0", DefaultConnectionTimeoutMinutes},
		{"15", 15},
	}
	for _, tc := range cases {
		cfg := &GlobalConfig{ConnectionTimeout: tc.raw}
		assert.Equal(t, tc.want, cfg.ConnectionTimeoutMinutes(), "raw=%q", tc.raw)
	}
}

func TestValidate(t *testing.T) {
	err := Validate(&GlobalConfig{})
	require.Error(t, err, "missing service URL must fail validation")

	err = Validate(&GlobalConfig{
		ServiceURL: "https://catalog.example.com",
		Proxy:      ProxyOverride{Enabled: true},
	})
	require.Error(t, err, "proxy override without host must fail validation")

	err = Validate(&GlobalConfig{ServiceURL: "https://catalog.example.com"})
	require.NoError(t, err)
}
