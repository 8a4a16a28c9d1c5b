// Package step wires the whole run together: build-kind classification,
// inventory collection, proxy resolution, the policy gate, the publish
// coordinator, and outcome reporting. It is the only layer that translates
// surfaced errors into build-result mutations.
package step

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/events"
	"git.home.luguber.info/inful/ossgate/internal/extract"
	"git.home.luguber.info/inful/ossgate/internal/gitmeta"
	"git.home.luguber.info/inful/ossgate/internal/logfields"
	"git.home.luguber.info/inful/ossgate/internal/metrics"
	"git.home.luguber.info/inful/ossgate/internal/policy"
	"git.home.luguber.info/inful/ossgate/internal/proxy"
	"git.home.luguber.info/inful/ossgate/internal/publish"
	"git.home.luguber.info/inful/ossgate/internal/report"
	"git.home.luguber.info/inful/ossgate/internal/runstore"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

// ClientFactory constructs the service client for a run once the proxy
// decision is known.
type ClientFactory func(cfg config.EffectiveConfig, d proxy.Decision) (service.Client, error)

// Runner executes one step run. A Runner is safe to reuse across runs; all
// per-run state lives on the stack.
type Runner struct {
	Collector *extract.Collector
	NewClient ClientFactory
	HostProxy *proxy.HostProxy
	Reporter  *report.Reporter
	Metrics   metrics.Recorder

	// Store and Events are optional; both are best-effort and never affect
	// the run outcome.
	Store  *runstore.Store
	Events *events.Publisher
}

// Run executes the full workflow for one build. Handled failures (extraction,
// service) are translated into diagnostics and result mutations here and do
// not surface as errors; only configuration faults and report-generation
// failures do.
func (r *Runner) Run(ctx context.Context, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, log *buildinfo.Log) (policy.Outcome, error) {
	runID := uuid.NewString()
	start := time.Now()
	kind := buildinfo.Classify(desc)
	slog.Info("Starting OSS gate run",
		logfields.RunID(runID),
		logfields.Kind(string(kind)),
		logfields.Job(desc.JobName))

	rec := r.Metrics
	if rec == nil {
		rec = metrics.NoopRecorder{}
	}

	cfg = r.defaultRequester(cfg, desc)

	inv, err := r.Collector.Collect(ctx, kind, desc, cfg, log)
	if err != nil {
		if gerrors.IsInterrupt(err) {
			return r.finishInterrupted(runID, kind, desc, start, rec, log, err), nil
		}
		log.Printf("Dependency extraction failed: %v", err)
		if cfg.FailOnError {
			desc.SetResult(buildinfo.ResultFailure)
		}
		outcome := policy.Skipped("extraction failed")
		r.finish(ctx, runID, kind, desc, cfg, inv.ProductName, outcome, policy.Result{}, start, rec)
		return outcome, nil
	}
	product := inv.ProductName

	decision := proxy.NoProxy
	if proxy.Configured(cfg, r.HostProxy) {
		decision, err = proxy.Resolve(cfg, r.HostProxy)
		if err != nil {
			// Configuration faults abort immediately; the policy workflow
			// never sees them.
			log.Printf("Proxy resolution failed: %v", err)
			return policy.Skipped("proxy configuration fault"), err
		}
	}

	client, err := r.NewClient(cfg, decision)
	if err != nil {
		log.Printf("Service client construction failed: %v", err)
		return policy.Skipped("service client fault"), err
	}
	// Scoped acquisition: the client is released on every exit path.
	defer client.Shutdown()

	gate := &policy.Gate{Client: client}
	checkStart := time.Now()
	gateRes, err := gate.Decide(ctx, cfg, inv, product, log)
	if gateRes.CheckRan {
		rec.ObserveCheckDuration(time.Since(checkStart))
	}
	if err != nil {
		if interrupted(err) {
			return r.finishInterrupted(runID, kind, desc, start, rec, log, err), nil
		}
		log.Printf("Policy compliance check failed: %v", err)
		if cfg.FailOnError {
			desc.SetResult(buildinfo.ResultFailure)
		}
		outcome := policy.Skipped("policy check failed")
		r.finish(ctx, runID, kind, desc, cfg, product, outcome, policy.Result{}, start, rec)
		return outcome, nil
	}
	rec.IncRejections(len(gateRes.Verdict.Rejections))

	outcome := policy.Skipped("publish not authorized")
	if gateRes.ShouldPublish {
		coordinator := &publish.Coordinator{Client: client}
		publishStart := time.Now()
		summary, pubErr := coordinator.Publish(ctx, cfg, inv, product, log)
		rec.ObservePublishDuration(time.Since(publishStart))
		if pubErr != nil {
			if interrupted(pubErr) {
				return r.finishInterrupted(runID, kind, desc, start, rec, log, pubErr), nil
			}
			log.Printf("Inventory update failed: %v", pubErr)
			if cfg.FailOnError {
				desc.SetResult(buildinfo.ResultFailure)
			}
			outcome = policy.Skipped("publish failed")
		} else if gateRes.Decision == policy.DecisionRejectedForced {
			outcome = policy.Rejected(true)
		} else {
			outcome = policy.Published(summary)
		}
	} else {
		outcome = policy.Rejected(false)
	}

	if err := r.Reporter.Report(desc, gateRes, outcome, log); err != nil {
		log.Printf("Report generation failed: %v", err)
		return outcome, err
	}

	r.finish(ctx, runID, kind, desc, cfg, product, outcome, gateRes, start, rec)
	return outcome, nil
}

// defaultRequester fills a blank requester identity from the workspace's git
// checkout, best effort.
func (r *Runner) defaultRequester(cfg config.EffectiveConfig, desc *buildinfo.Descriptor) config.EffectiveConfig {
	if strings.TrimSpace(cfg.RequesterEmail) != "" || desc.WorkspacePath == "" {
		return cfg
	}
	meta, err := gitmeta.FromWorkspace(desc.WorkspacePath)
	if err != nil {
		slog.Debug("No workspace git metadata", logfields.Error(err))
		return cfg
	}
	cfg.RequesterEmail = meta.AuthorEmail
	return cfg
}

// finish records run bookkeeping: metrics, the run ledger, and the outcome
// event. All of it is best-effort.
func (r *Runner) finish(ctx context.Context, runID string, kind buildinfo.Kind, desc *buildinfo.Descriptor, cfg config.EffectiveConfig, product string, outcome policy.Outcome, gateRes policy.Result, start time.Time, rec metrics.Recorder) {
	duration := time.Since(start)
	rec.ObserveRunDuration(string(kind), duration)
	rec.IncRunOutcome(outcomeLabel(outcome, desc))
	slog.Info("Run finished",
		logfields.RunID(runID),
		logfields.Product(product),
		logfields.Outcome(string(outcome.Kind)),
		logfields.DurationMS(float64(duration.Milliseconds())))

	rejected := gateRes.Decision == policy.DecisionRejectedBlocked || gateRes.Decision == policy.DecisionRejectedForced
	if r.Store != nil {
		err := r.Store.Append(ctx, runstore.Run{
			ID:       runID,
			JobName:  desc.JobName,
			Product:  product,
			Kind:     string(kind),
			Outcome:  string(outcome.Kind),
			Rejected: rejected,
			Forced:   outcome.Forced,
			Duration: duration,
		})
		if err != nil {
			slog.Warn("Run history append failed", "error", err)
		}
	}
	if r.Events != nil {
		err := r.Events.Publish(events.RunEvent{
			RunID:    runID,
			JobName:  desc.JobName,
			Product:  product,
			Kind:     string(kind),
			Outcome:  string(outcome.Kind),
			Rejected: rejected,
			Forced:   outcome.Forced,
		})
		if err != nil {
			slog.Warn("Run event publish failed", "error", err)
		}
	}
}

// finishInterrupted handles a host abort: logged, swallowed, and the build
// result left alone so the host's own abort handling owns the outcome.
func (r *Runner) finishInterrupted(runID string, kind buildinfo.Kind, desc *buildinfo.Descriptor, start time.Time, rec metrics.Recorder, log *buildinfo.Log, cause error) policy.Outcome {
	log.Printf("Run interrupted: %v", cause)
	slog.Info("Run interrupted by host",
		logfields.RunID(runID),
		logfields.Kind(string(kind)),
		logfields.Job(desc.JobName))
	rec.ObserveRunDuration(string(kind), time.Since(start))
	rec.IncRunOutcome("interrupted")
	return policy.Skipped("interrupted")
}

func interrupted(err error) bool {
	return gerrors.IsInterrupt(err) ||
		errors.Is(err, context.Canceled) ||
		errors.Is(err, context.DeadlineExceeded)
}

// outcomeLabel maps an outcome plus the recorded build result to the metrics
// label space.
func outcomeLabel(outcome policy.Outcome, desc *buildinfo.Descriptor) string {
	if desc.Result() == buildinfo.ResultFailure && outcome.Kind == policy.OutcomeSkipped {
		return "failed"
	}
	return string(outcome.Kind)
}
