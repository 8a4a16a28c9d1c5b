// Package policy implements the central decision engine of a run: whether a
// compliance check executes, how its verdict is interpreted, and whether the
// inventory may be published, the build failed, or both.
package policy

import (
	"context"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

// State is a step of the gate's decision sequence. The sequence is
// Idle → {CheckSkipped, CheckRunning} → {Approved, RejectedBlocked,
// RejectedForced} → Done.
type State string

const (
	StateIdle            State = "idle"
	StateCheckSkipped    State = "check-skipped"
	StateCheckRunning    State = "check-running"
	StateApproved        State = "approved"
	StateRejectedBlocked State = "rejected-blocked"
	StateRejectedForced  State = "rejected-forced"
	StateDone            State = "done"
)

// Decision is the gate's terminal verdict for the run.
type Decision string

const (
	// DecisionApproved authorizes the publish.
	DecisionApproved Decision = "approved"
	// DecisionRejectedBlocked blocks the publish.
	DecisionRejectedBlocked Decision = "rejected-blocked"
	// DecisionRejectedForced records rejections but still authorizes the
	// publish under the force-update override.
	DecisionRejectedForced Decision = "rejected-forced"
)

// Messages logged for each verdict interpretation. Operators read these from
// CI logs.
const (
	MsgRejected  = "Open source rejected by organization policies."
	MsgForced    = "Some dependencies violate open source policies, however all were force updated to organization inventory."
	MsgConformed = "All dependencies conform with open source policies."

	// MsgPublisherFailure is the build failure message used when a forced
	// update still degrades the build under fail-on-error.
	MsgPublisherFailure = "OSS gate publisher failure"
)

// Result carries the gate's decision and everything the caller needs to act
// on it. The gate itself never mutates the build; translating FailBuild into
// a build-result mutation is the top-level run's job.
type Result struct {
	Decision Decision

	// CheckRan is true when a compliance check actually executed; a report
	// is generated for the run exactly when this is set.
	CheckRan bool

	// Verdict is the remote verdict, zero when no check ran.
	Verdict service.ComplianceVerdict

	// ShouldPublish is true for Approved and RejectedForced.
	ShouldPublish bool

	// FailBuild is true when the build must be marked failed. Decoupled from
	// ShouldPublish: a forced update can publish and still fail the build so
	// the violation stays visible as a build-quality signal.
	FailBuild   bool
	FailMessage string

	// Path records the state transitions taken, for diagnostics and tests.
	Path []State
}

// Gate decides the publish outcome for an inventory.
type Gate struct {
	Client service.Client
}

// Decide runs the decision sequence. The compliance client is only invoked
// when the effective configuration asks for a policy check; the verdict
// interpretation follows the exhaustive decision table:
//
//	checkPolicies=false                          → Approved
//	checkPolicies=true, no rejections            → Approved
//	checkPolicies=true, rejections, force=false  → RejectedBlocked
//	checkPolicies=true, rejections, force=true   → RejectedForced
func (g *Gate) Decide(ctx context.Context, cfg config.EffectiveConfig, inv inventory.Inventory, product string, log *buildinfo.Log) (Result, error) {
	res := Result{Path: []State{StateIdle}}

	if !cfg.ShouldCheckPolicies {
		res.Path = append(res.Path, StateCheckSkipped, StateApproved, StateDone)
		res.Decision = DecisionApproved
		res.ShouldPublish = true
		return res, nil
	}

	res.Path = append(res.Path, StateCheckRunning)
	res.CheckRan = true
	log.Println("Checking policies")
	verdict, err := g.Client.CheckPolicyCompliance(ctx, cfg.Token, product, cfg.ProductVersion, inv, cfg.CheckAllLibraries)
	if err != nil {
		return res, err
	}
	res.Verdict = verdict

	switch {
	case !verdict.HasRejections():
		res.Path = append(res.Path, StateApproved, StateDone)
		res.Decision = DecisionApproved
		res.ShouldPublish = true
		log.Println(MsgConformed)

	case cfg.ForceUpdate:
		res.Path = append(res.Path, StateRejectedForced, StateDone)
		res.Decision = DecisionRejectedForced
		res.ShouldPublish = true
		log.Println(MsgForced)
		if cfg.FailOnError {
			res.FailBuild = true
			res.FailMessage = MsgPublisherFailure
		}

	default:
		res.Path = append(res.Path, StateRejectedBlocked, StateDone)
		res.Decision = DecisionRejectedBlocked
		if cfg.FailOnError {
			res.FailBuild = true
			res.FailMessage = MsgRejected
		} else {
			// The violation is surfaced but the run continues unpublished.
			log.Println(MsgRejected)
		}
	}

	return res, nil
}
