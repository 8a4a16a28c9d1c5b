package commands

import (
	"context"
	"fmt"
	"time"

	"git.home.luguber.info/inful/ossgate/internal/config"
	"git.home.luguber.info/inful/ossgate/internal/runstore"
)

// HistoryCmd implements the 'history' command, reading the local run ledger.
type HistoryCmd struct {
	Limit   int    `short:"l" help:"Maximum number of runs to show" default:"20"`
	Product string `short:"p" help:"Only show runs for this product"`
}

func (h *HistoryCmd) Run(_ *Global, root *CLI) error {
	global, err := config.LoadGlobal(root.Config)
	if err != nil {
		return err
	}
	if !global.History.Enabled || global.History.Path == "" {
		return fmt.Errorf("run history is not enabled in %s", root.Config)
	}

	store, err := runstore.Open(global.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := context.Background()
	var runs []runstore.Run
	if h.Product != "" {
		runs, err = store.ByProduct(ctx, h.Product)
	} else {
		runs, err = store.Recent(ctx, h.Limit)
	}
	if err != nil {
		return err
	}

	for _, r := range runs {
		flag := ""
		if r.Rejected {
			flag = "  REJECTED"
			if r.Forced {
				flag = "  REJECTED(forced)"
			}
		}
		fmt.Printf("%s  %-20s  %-12s  %-9s  %s%s\n",
			r.OccurredAt.Format("2006-01-02 15:04:05"), r.JobName, r.Product, r.Outcome, r.Duration.Round(time.Millisecond), flag)
	}
	return nil
}
