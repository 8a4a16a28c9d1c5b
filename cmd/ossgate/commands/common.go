package commands

import (
	"log/slog"
	"os"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/ossgate/internal/config"
)

// Global carries state shared by subcommands.
type Global struct {
	Logger *slog.Logger
}

// CLI definition & global flags.
type CLI struct {
	Config  string           `short:"c" help:"Global configuration file path" default:"ossgate.yaml"`
	Verbose bool             `short:"v" help:"Enable verbose logging"`
	Version kong.VersionFlag `name:"version" help:"Show version and exit"`

	Run     RunCmd     `cmd:"" help:"Run the full gate step: extract, check policies, publish"`
	Check   CheckCmd   `cmd:"" help:"Run the policy check only, never publishing"`
	Init    InitCmd    `cmd:"" help:"Write a starter global configuration file"`
	History HistoryCmd `cmd:"" help:"Show recent runs from the local run ledger"`
}

// AfterApply runs after flag parsing; setup logging once.
func (c *CLI) AfterApply() error {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return nil
}

// loadConfigs reads the global config and, when given, the per-job step
// config, and merges them into the run's effective configuration.
func loadConfigs(globalPath, stepPath string) (config.EffectiveConfig, error) {
	config.LoadEnvFiles()
	global, err := config.LoadGlobal(globalPath)
	if err != nil {
		return config.EffectiveConfig{}, err
	}
	step := &config.StepConfig{}
	if stepPath != "" {
		step, err = config.LoadStep(stepPath)
		if err != nil {
			return config.EffectiveConfig{}, err
		}
	}
	return config.NewEffective(global, step), nil
}
