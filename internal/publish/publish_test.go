package publish

import (
	"bytes"
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/ossgate/internal/buildinfo"
	"git.home.luguber.info/inful/ossgate/internal/config"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
	"git.home.luguber.info/inful/ossgate/internal/service"
)

type fakeClient struct {
	summary      service.PublishSummary
	err          error
	updateCalls  int
	gotToken     string
	gotRequester string
	gotProduct   string
	gotVersion   string
}

func (f *fakeClient) CheckPolicyCompliance(context.Context, string, string, string, inventory.Inventory, bool) (service.ComplianceVerdict, error) {
	return service.ComplianceVerdict{}, nil
}

func (f *fakeClient) UpdateInventory(_ context.Context, token, requester, product, version string, _ inventory.Inventory) (service.PublishSummary, error) {
	f.updateCalls++
	f.gotToken = token
	f.gotRequester = requester
	f.gotProduct = product
	f.gotVersion = version
	return f.summary, f.err
}

func (f *fakeClient) Shutdown() {}

func TestPublishThreadsIdentity(t *testing.T) {
	client := &fakeClient{}
	c := &Coordinator{Client: client}

	cfg := config.EffectiveConfig{
		Token:          "org-tok",
		RequesterEmail: "dev@example.com",
		ProductVersion: "2.0",
	}
	_, err := c.Publish(context.Background(), cfg, inventory.Inventory{}, "shop-backend", buildinfo.NewLog(nil))
	require.NoError(t, err)
	assert.Equal(t, 1, client.updateCalls)
	assert.Equal(t, "org-tok", client.gotToken)
	assert.Equal(t, "dev@example.com", client.gotRequester)
	assert.Equal(t, "shop-backend", client.gotProduct)
	assert.Equal(t, "2.0", client.gotVersion)
}

func TestSummaryLogFormat(t *testing.T) {
	client := &fakeClient{summary: service.PublishSummary{
		Organization:    "Acme Corp",
		CreatedProjects: []string{"shop-backend - 2.0", "shop-api - 2.0"},
		UpdatedProjects: []string{"shop-web - 1.9"},
		RequestToken:    "rt-4711",
	}}
	c := &Coordinator{Client: client}

	var buf bytes.Buffer
	_, err := c.Publish(context.Background(), config.EffectiveConfig{}, inventory.Inventory{}, "shop-backend", buildinfo.NewLog(&buf))
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Inventory update results:")
	assert.Contains(t, out, "Organization: Acme Corp")
	assert.Contains(t, out, "2 newly created projects:")
	assert.Contains(t, out, "shop-backend - 2.0,shop-api - 2.0")
	assert.Contains(t, out, "1 existing projects were updated:")
	assert.Contains(t, out, "shop-web - 1.9")
	assert.Contains(t, out, "Support token: rt-4711")
}

func TestSupportTokenLineOmittedWhenBlank(t *testing.T) {
	client := &fakeClient{summary: service.PublishSummary{Organization: "Acme Corp"}}
	c := &Coordinator{Client: client}

	var buf bytes.Buffer
	_, err := c.Publish(context.Background(), config.EffectiveConfig{}, inventory.Inventory{}, "app", buildinfo.NewLog(&buf))
	require.NoError(t, err)
	assert.NotContains(t, buf.String(), "Support token")
}

func TestPublishErrorSurfacesWithoutRetry(t *testing.T) {
	client := &fakeClient{err: fmt.Errorf("503 service unavailable")}
	c := &Coordinator{Client: client}

	_, err := c.Publish(context.Background(), config.EffectiveConfig{}, inventory.Inventory{}, "app", buildinfo.NewLog(nil))
	require.Error(t, err)
	assert.Equal(t, 1, client.updateCalls, "no retry on failure")
}
