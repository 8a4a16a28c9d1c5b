// Package publish sends an authorized inventory update to the remote catalog
// and writes the operator-facing summary lines to the build log.
package publish

import (
	"context"
	"strings"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

// Coordinator performs the inventory update. It is only invoked for approved
// and rejected-but-forced gate decisions; callers never route a blocked
// rejection here.
type Coordinator struct {
	Client service.Client
}

// Publish sends the inventory upstream and logs the update summary. Failures
// surface to the caller untouched: the coordinator never retries.
func (c *Coordinator) Publish(ctx context.Context, cfg config.EffectiveConfig, inv inventory.Inventory, product string, log *buildinfo.Log) (service.PublishSummary, error) {
	log.Println("Sending inventory update to catalog")
	summary, err := c.Client.UpdateInventory(ctx, cfg.Token, cfg.RequesterEmail, product, cfg.ProductVersion, inv)
	if err != nil {
		return service.PublishSummary{}, err
	}
	logSummary(summary, log)
	return summary, nil
}

// logSummary writes the contractual update-result lines. Operators parse
// these from CI logs, so the shape (counts, comma-joined name lists, optional
// support token line) must stay stable.
func logSummary(s service.PublishSummary, log *buildinfo.Log) {
	log.Println("Inventory update results:")
	log.Println("Organization: " + s.Organization)
	log.Printf("%d newly created projects:", len(s.CreatedProjects))
	log.Println(strings.Join(s.CreatedProjects, ","))
	log.Printf("%d existing projects were updated:", len(s.UpdatedProjects))
	log.Println(strings.Join(s.UpdatedProjects, ","))
	if strings.TrimSpace(s.RequestToken) != "" {
		log.Println("Support token: " + s.RequestToken)
	}
}
