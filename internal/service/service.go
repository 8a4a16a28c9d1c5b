// Package service defines the compliance/update client contract against the
// remote catalog, and an HTTP implementation of it. The orchestration only
// depends on the Client interface; tests substitute fakes.
package service

import (
	"context"

	"git.home.luguber.info/inful/ossgate/internal/inventory"
)

// Rejection is one policy rejection returned by the remote catalog. Beyond
// the presence of rejections the detail is opaque to the decision logic; it
// feeds the compliance report only.
type Rejection struct {
	Project string `json:"project"`
	Library string `json:"library"`
	Policy  string `json:"policy"`
	Reason  string `json:"reason,omitempty"`
}

// ComplianceVerdict is the result of a remote policy check.
type ComplianceVerdict struct {
	Rejections []Rejection `json:"rejections"`
}

// HasRejections reports whether any dependency was rejected.
func (v ComplianceVerdict) HasRejections() bool {
	return len(v.Rejections) > 0
}

// PublishSummary summarizes a successful inventory update.
type PublishSummary struct {
	Organization    string   `json:"organization"`
	CreatedProjects []string `json:"createdProjects"`
	UpdatedProjects []string `json:"updatedProjects"`

	// RequestToken is an optional support token for correlating the request
	// with the catalog operator.
	RequestToken string `json:"requestToken,omitempty"`
}

// Client is the compliance/update collaborator. Acquired once per run and
// released via Shutdown on every exit path.
type Client interface {
	// CheckPolicyCompliance evaluates the inventory against organizational
	// policies. checkAll evaluates every library, not just newly seen ones.
	CheckPolicyCompliance(ctx context.Context, token, product, version string, inv inventory.Inventory, checkAll bool) (ComplianceVerdict, error)

	// UpdateInventory publishes the inventory upstream.
	UpdateInventory(ctx context.Context, token, requester, product, version string, inv inventory.Inventory) (PublishSummary, error)

	// Shutdown releases the client's connections. Safe to call exactly once.
	Shutdown()
}
