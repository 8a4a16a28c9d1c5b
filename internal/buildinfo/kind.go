package buildinfo

import "strings"

// Kind is the detected build-system shape driving extraction strategy
// selection. Classification is total: every descriptor maps to exactly one
// kind.
type Kind string

const (
	// KindMavenReactor is a Maven multi-module job.
	KindMavenReactor Kind = "maven-reactor"
	// KindMavenWrappedPipeline is a scripted pipeline whose script wraps a
	// Maven invocation.
	KindMavenWrappedPipeline Kind = "maven-wrapped-pipeline"
	// KindGenericPipeline is any other scripted pipeline.
	KindGenericPipeline Kind = "generic-pipeline"
	// KindFreestyle is a plain job without a pipeline script.
	KindFreestyle Kind = "freestyle"
)

// WithMavenMarker is the script fragment identifying a Maven-wrapped pipeline.
const WithMavenMarker = "withMaven"

// Classify inspects a descriptor and returns its build kind. It is pure and
// total; an empty or unreadable script is treated as "no marker present".
func Classify(d *Descriptor) Kind {
	switch {
	case d.MavenReactor:
		return KindMavenReactor
	case d.Pipeline && strings.Contains(d.PipelineScript, WithMavenMarker):
		return KindMavenWrappedPipeline
	case d.Pipeline || d.FreestyleStep:
		return KindGenericPipeline
	default:
		return KindFreestyle
	}
}
