package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/extract"
	"git.home.luguber.info/inful/ossgate/internal/policy"
	"git.home.luguber.info/inful/ossgate/internal/proxy"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

// CheckCmd implements the 'check' command: extraction plus a policy check,
// with the publish leg disabled. The exit code reflects the verdict.
type CheckCmd struct {
	Workspace  string `short:"w" help:"Workspace root to scan" default:"."`
	StepConfig string `short:"s" help:"Per-job step configuration file (yaml)"`
	All        bool   `help:"Check all libraries, not only newly seen ones"`
}

func (c *CheckCmd) Run(_ *Global, root *CLI) error {
	eff, err := loadConfigs(root.Config, c.StepConfig)
	if err != nil {
		return err
	}
	// A dry run always checks, regardless of the configured mode.
	eff.ShouldCheckPolicies = true
	if c.All {
		eff.CheckAllLibraries = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	desc := &buildinfo.Descriptor{JobName: "check", WorkspacePath: c.Workspace, Pipeline: true}
	log := buildinfo.NewLog(os.Stdout)
	collector := &extract.Collector{
		Generic: extract.ScanningExtractor{Scanner: extract.FileScanner{}},
		Scanner: extract.FileScanner{},
	}
	inv, err := collector.Collect(ctx, buildinfo.Classify(desc), desc, eff, log)
	if err != nil {
		return err
	}

	decision := proxy.NoProxy
	if proxy.Configured(eff, nil) {
		if decision, err = proxy.Resolve(eff, nil); err != nil {
			return err
		}
	}
	client, err := service.NewHTTPClient(eff.ServiceURL, eff.ConnectionTimeout, decision)
	if err != nil {
		return err
	}
	defer client.Shutdown()

	gate := &policy.Gate{Client: client}
	res, err := gate.Decide(ctx, eff, inv, inv.ProductName, log)
	if err != nil {
		return err
	}
	for _, rej := range res.Verdict.Rejections {
		fmt.Printf("REJECTED  %s  %s  (%s)\n", rej.Project, rej.Library, rej.Policy)
	}
	if res.Verdict.HasRejections() {
		return fmt.Errorf("inventory rejected: %d policy rejections", len(res.Verdict.Rejections))
	}
	return nil
}
