// Package metrics defines observability hooks for run outcomes and service
// call durations, with a Prometheus-backed implementation and a no-op default.
package metrics

import "time"

// Recorder defines observability hooks for step runs. All methods must be
// safe on the NoopRecorder so injection stays optional.
type Recorder interface {
	ObserveRunDuration(kind string, d time.Duration)
	ObserveCheckDuration(d time.Duration)
	ObservePublishDuration(d time.Duration)
	IncRunOutcome(outcome string) // outcome: published|skipped|rejected|failed
	IncRejections(n int)
}

// NoopRecorder is a Recorder that does nothing (default when metrics are not
// configured).
type NoopRecorder struct{}

func (NoopRecorder) ObserveRunDuration(string, time.Duration) {}
func (NoopRecorder) ObserveCheckDuration(time.Duration)       {}
func (NoopRecorder) ObservePublishDuration(time.Duration)     {}
func (NoopRecorder) IncRunOutcome(string)                     {}
func (NoopRecorder) IncRejections(int)                        {}
