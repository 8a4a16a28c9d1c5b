package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
	"git.home.luguber.info/inful/ossgate/internal/proxy"
)

const (
	agentType    = "ossgate"
	agentVersion = "1.0"

	requestCheckPolicies   = "CHECK_POLICY_COMPLIANCE"
	requestUpdateInventory = "UPDATE"
)

// HTTPClient talks to the catalog's agent endpoint over HTTP.
type HTTPClient struct {
	baseURL string
	client  *http.Client
}

// NormalizeServiceURL appends the agent path segment to a configured service
// URL, adding the trailing slash when missing. A blank URL stays blank.
func NormalizeServiceURL(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return raw
	}
	if !strings.HasSuffix(raw, "/") {
		raw += "/"
	}
	return raw + "agent"
}

// NewHTTPClient constructs the agent client with the connection timeout from
// configuration and the resolved proxy decision. The timeout is enforced by
// the transport, never by the orchestration logic.
func NewHTTPClient(serviceURL string, timeoutMinutes int, d proxy.Decision) (*HTTPClient, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if d.UseProxy {
		proxyURL := &url.URL{Scheme: "http", Host: fmt.Sprintf("%s:%d", d.Host, d.Port)}
		if d.Port == 0 {
			proxyURL.Host = d.Host
		}
		if d.Username != "" {
			proxyURL.User = url.UserPassword(d.Username, d.Password)
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}
	return &HTTPClient{
		baseURL: NormalizeServiceURL(serviceURL),
		client: &http.Client{
			Transport: transport,
			Timeout:   time.Duration(timeoutMinutes) * time.Minute,
		},
	}, nil
}

type agentRequest struct {
	Type           string                  `json:"type"`
	Agent          string                  `json:"agent"`
	AgentVersion   string                  `json:"agentVersion"`
	Token          string                  `json:"token"`
	Requester      string                  `json:"requesterEmail,omitempty"`
	Product        string                  `json:"product"`
	ProductVersion string                  `json:"productVersion,omitempty"`
	Projects       []inventory.ProjectInfo `json:"projects"`
	ForceCheckAll  bool                    `json:"forceCheckAllLibraries,omitempty"`
	TimeStamp      int64                   `json:"timeStamp"`
}

// CheckPolicyCompliance implements Client.
func (c *HTTPClient) CheckPolicyCompliance(ctx context.Context, token, product, version string, inv inventory.Inventory, checkAll bool) (ComplianceVerdict, error) {
	req := agentRequest{
		Type:           requestCheckPolicies,
		Agent:          agentType,
		AgentVersion:   agentVersion,
		Token:          token,
		Product:        product,
		ProductVersion: version,
		Projects:       inv.Projects,
		ForceCheckAll:  checkAll,
		TimeStamp:      time.Now().UnixMilli(),
	}
	var verdict ComplianceVerdict
	if err := c.post(ctx, req, &verdict); err != nil {
		return ComplianceVerdict{}, gerrors.ServiceFailed("checkPolicyCompliance", err)
	}
	return verdict, nil
}

// UpdateInventory implements Client.
func (c *HTTPClient) UpdateInventory(ctx context.Context, token, requester, product, version string, inv inventory.Inventory) (PublishSummary, error) {
	req := agentRequest{
		Type:           requestUpdateInventory,
		Agent:          agentType,
		AgentVersion:   agentVersion,
		Token:          token,
		Requester:      requester,
		Product:        product,
		ProductVersion: version,
		Projects:       inv.Projects,
		TimeStamp:      time.Now().UnixMilli(),
	}
	var summary PublishSummary
	if err := c.post(ctx, req, &summary); err != nil {
		return PublishSummary{}, gerrors.ServiceFailed("update", err)
	}
	return summary, nil
}

// Shutdown implements Client.
func (c *HTTPClient) Shutdown() {
	c.client.CloseIdleConnections()
}

func (c *HTTPClient) post(ctx context.Context, reqBody agentRequest, out any) error {
	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
