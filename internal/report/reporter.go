package report

import (
	"log/slog"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/policy"
)

// Reporter maps the gate result and final outcome onto the build record:
// report artifact attachment, the at-most-once result mutation, and the
// closing log lines.
type Reporter struct {
	Renderer Renderer
}

// Report finalizes a run. A compliance report is generated whenever a check
// ran, regardless of the outcome. Only a failure is ever written to the
// result slot; an untouched slot is the host's own success bookkeeping.
func (r *Reporter) Report(desc *buildinfo.Descriptor, gate policy.Result, outcome policy.Outcome, log *buildinfo.Log) error {
	if gate.CheckRan {
		log.Println("Generating policy check report")
		artifact, err := r.Renderer.Generate(gate.Verdict, desc.JobName, desc.BuildNumber, desc.ReportDir)
		if err != nil {
			return err
		}
		desc.AttachArtifact(artifact.HTMLPath)
		desc.AttachArtifact(artifact.MarkdownPath)
	}

	if gate.FailBuild {
		log.Println(gate.FailMessage)
		desc.SetResult(buildinfo.ResultFailure)
	}

	switch outcome.Kind {
	case policy.OutcomePublished:
		slog.Info("Inventory published",
			slog.String("organization", outcome.Summary.Organization),
			slog.Int("created", len(outcome.Summary.CreatedProjects)),
			slog.Int("updated", len(outcome.Summary.UpdatedProjects)))
	case policy.OutcomeRejected:
		slog.Warn("Inventory rejected by policy",
			slog.Bool("forced", outcome.Forced))
	case policy.OutcomeSkipped:
		slog.Info("Inventory publish skipped", slog.String("reason", outcome.Reason))
	}
	return nil
}
