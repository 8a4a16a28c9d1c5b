package main

import (
	"log/slog"

	"github.com/alecthomas/kong"

	"git.home.luguber.info/inful/ossgate/cmd/ossgate/commands"
	"git.home.luguber.info/inful/ossgate/internal/version"
)

func main() {
	var cli commands.CLI
	ctx := kong.Parse(&cli,
		kong.Name("ossgate"),
		kong.Description("Policy-gated open source inventory publishing for CI builds"),
		kong.Vars{"version": version.Full()},
	)

	err := ctx.Run(&commands.Global{Logger: slog.Default()})
	ctx.FatalIfErrorf(err)
}
