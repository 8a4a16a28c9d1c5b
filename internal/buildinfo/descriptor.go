// Package buildinfo models the host's view of a running build: the descriptor
// the orchestration reads build-kind signals from, and the terminal result
// slot the orchestration may set at most once per run.
package buildinfo

import "sync"

// Result is the terminal outcome recorded on a build.
type Result string

const (
	ResultUnset   Result = ""
	ResultSuccess Result = "success"
	ResultFailure Result = "failure"
)

// Descriptor is the handle to the running build supplied by the host. The
// orchestration only reads its signals; the single mutable slot is the
// terminal result.
type Descriptor struct {
	JobName     string
	BuildNumber int

	// WorkspacePath is the root of the checked-out workspace.
	WorkspacePath string

	// ReportDir is where report artifacts for this build are written.
	ReportDir string

	// MavenReactor is true for a Maven multi-module job.
	MavenReactor bool

	// Pipeline is true for a scripted pipeline job.
	Pipeline bool

	// PipelineScript is the pipeline script text, empty when unavailable.
	PipelineScript string

	// FreestyleStep is set when the caller asserts freestyle-pipeline
	// equivalence for a step invocation outside a pipeline run.
	FreestyleStep bool

	mu        sync.Mutex
	result    Result
	artifacts []string
}

// SetResult records the terminal result. The first call wins; later calls are
// ignored so a degraded result is never upgraded back to success.
func (d *Descriptor) SetResult(r Result) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.result == ResultUnset {
		d.result = r
	}
}

// Result returns the recorded terminal result, or ResultUnset.
func (d *Descriptor) Result() Result {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.result
}

// AttachArtifact records a report artifact path on the build record.
func (d *Descriptor) AttachArtifact(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.artifacts = append(d.artifacts, path)
}

// Artifacts returns the attached artifact paths in attachment order.
func (d *Descriptor) Artifacts() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.artifacts))
	copy(out, d.artifacts)
	return out
}
