package metrics

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTextfile(t *testing.T) {
	reg := prom.NewRegistry()
	rec := NewPrometheusRecorder(reg)
	rec.ObserveRunDuration("maven-reactor", 2*time.Second)
	rec.IncRunOutcome("published")
	rec.IncRejections(3)

	path := filepath.Join(t.TempDir(), "ossgate.prom")
	require.NoError(t, WriteTextfile(reg, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, "ossgate_run_duration_seconds")
	assert.Contains(t, out, `ossgate_run_outcomes_total{outcome="published"} 1`)
	assert.Contains(t, out, "ossgate_policy_rejections_total 3")
}

func TestWriteTextfileBadPath(t *testing.T) {
	err := WriteTextfile(prom.NewRegistry(), filepath.Join(t.TempDir(), "missing", "ossgate.prom"))
	assert.Error(t, err)
}
