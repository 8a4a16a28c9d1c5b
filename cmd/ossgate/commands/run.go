package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	"git.home.luguber.info/inful/ossgate/internal/events"
	"git.home.luguber.info/inful/ossgate/internal/extract"
	"git.home.luguber.info/inful/ossgate/internal/metrics"
	"git.home.luguber.info/inful/ossgate/internal/proxy"
	"git.home.luguber.info/inful/ossgate/internal/report"
	"git.home.luguber.info/inful/ossgate/internal/runstore"
	"git.home.luguber.info/inful/ossgate/internal/service"
	"git.home.luguber.info/inful/ossgate/internal/step"
)

// RunCmd implements the 'run' command: one full gate step against a workspace.
type RunCmd struct {
	Workspace   string `short:"w" help:"Workspace root to scan" default:"."`
	Job         string `short:"j" help:"Job name for logs and reports" default:"local"`
	BuildNumber int    `short:"n" help:"Build number" default:"0"`
	StepConfig  string `short:"s" help:"Per-job step configuration file (yaml)"`
	ReportDir   string `help:"Directory for report artifacts" default:"./ossgate-reports"`

	Maven          bool   `help:"Treat the workspace as a Maven multi-module reactor"`
	Pipeline       bool   `help:"Treat the run as a scripted pipeline job"`
	PipelineScript string `help:"Pipeline script file, used to detect a wrapped Maven build" type:"existingfile"`
	Freestyle      bool   `help:"Assert freestyle-step semantics for this invocation"`
}

func (r *RunCmd) Run(_ *Global, root *CLI) error {
	eff, err := loadConfigs(root.Config, r.StepConfig)
	if err != nil {
		return err
	}

	desc, err := r.descriptor()
	if err != nil {
		return err
	}

	runner := &step.Runner{
		Collector: &extract.Collector{
			Generic: extract.ScanningExtractor{Scanner: extract.FileScanner{}},
			Scanner: extract.FileScanner{},
		},
		NewClient: func(cfg config.EffectiveConfig, d proxy.Decision) (service.Client, error) {
			return service.NewHTTPClient(cfg.ServiceURL, cfg.ConnectionTimeout, d)
		},
		Reporter: &report.Reporter{Renderer: report.GoldmarkRenderer{}},
		Metrics:  metrics.NoopRecorder{},
	}
	if eff.Metrics.Enabled {
		reg := prometheus.NewRegistry()
		runner.Metrics = metrics.NewPrometheusRecorder(reg)
		// No endpoint to scrape in a one-shot run; dump the registry for a
		// textfile collector instead.
		defer func() {
			if err := metrics.WriteTextfile(reg, eff.Metrics.Path); err != nil {
				slog.Warn("Metrics dump failed", "error", err)
			}
		}()
	}
	if eff.History.Enabled && eff.History.Path != "" {
		store, err := runstore.Open(eff.History.Path)
		if err != nil {
			return err
		}
		defer store.Close()
		runner.Store = store
	}
	if eff.Events.Enabled {
		pub, err := events.NewPublisher(eff.Events)
		if err != nil {
			slog.Warn("Event publisher unavailable", "error", err)
		} else {
			defer pub.Close()
			runner.Events = pub
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	outcome, err := runner.Run(ctx, desc, eff, buildinfo.NewLog(os.Stdout))
	if err != nil {
		return err
	}
	slog.Info("Run complete",
		slog.String("outcome", string(outcome.Kind)),
		slog.String("result", string(desc.Result())))
	if desc.Result() == buildinfo.ResultFailure {
		return fmt.Errorf("build marked as failed")
	}
	return nil
}

func (r *RunCmd) descriptor() (*buildinfo.Descriptor, error) {
	desc := &buildinfo.Descriptor{
		JobName:       r.Job,
		BuildNumber:   r.BuildNumber,
		WorkspacePath: r.Workspace,
		ReportDir:     r.ReportDir,
		MavenReactor:  r.Maven,
		Pipeline:      r.Pipeline,
		FreestyleStep: r.Freestyle,
	}
	if r.PipelineScript != "" {
		script, err := os.ReadFile(r.PipelineScript)
		if err != nil {
			return nil, fmt.Errorf("read pipeline script: %w", err)
		}
		desc.Pipeline = true
		desc.PipelineScript = string(script)
	}
	return desc, nil
}
