package policy

import "git.home.luguber.info/inful/ossgate/internal/service"

// OutcomeKind tags the final decision artifact of a run.
type OutcomeKind string

const (
	OutcomeSkipped   OutcomeKind = "skipped"
	OutcomePublished OutcomeKind = "published"
	OutcomeRejected  OutcomeKind = "rejected"
)

// Outcome is the final publish outcome consumed by the outcome reporter.
type Outcome struct {
	Kind OutcomeKind

	// Reason explains a skip (extraction failure, empty inventory, abort).
	Reason string

	// Summary is set for published outcomes.
	Summary *service.PublishSummary

	// Forced marks a rejected outcome that was published anyway.
	Forced bool
}

// Skipped builds the outcome for a run that never published.
func Skipped(reason string) Outcome {
	return Outcome{Kind: OutcomeSkipped, Reason: reason}
}

// Published builds the outcome for a successful inventory update.
func Published(summary service.PublishSummary) Outcome {
	return Outcome{Kind: OutcomePublished, Summary: &summary}
}

// Rejected builds the outcome for a policy-rejected run. forced records
// whether the inventory was published regardless.
func Rejected(forced bool) Outcome {
	return Outcome{Kind: OutcomeRejected, Forced: forced}
}
