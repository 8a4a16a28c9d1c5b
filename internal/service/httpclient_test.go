package service

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gerrors "git.home.luguber.info/inful/ossgate/internal/errors"
	"git.home.luguber.info/inful/ossgate/internal/inventory"
	"git.home.luguber.info/inful/ossgate/internal/proxy"
)

func TestNormalizeServiceURL(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"   ", "   "},
		{"https://catalog.example.com", "https://catalog.example.com/agent"},
		{"https://catalog.example.com/", "https://catalog.example.com/agent"},
		{"https://catalog.example.com/api/", "https://catalog.example.com/api/agent"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, NormalizeServiceURL(tc.in), "in=%q", tc.in)
	}
}

// The constructor owns normalization: callers hand it the configured URL
// verbatim, and the agent segment is appended exactly once.
func TestNewHTTPClientNormalizesOnce(t *testing.T) {
	client, err := NewHTTPClient("https://catalog.example.com", 60, proxy.NoProxy)
	require.NoError(t, err)
	assert.Equal(t, "https://catalog.example.com/agent", client.baseURL)
}

func testInventory() inventory.Inventory {
	return inventory.Inventory{Projects: []inventory.ProjectInfo{{
		Coordinates:  inventory.Coordinates{ArtifactID: "app", Version: "1.0"},
		Dependencies: []inventory.Dependency{{ArtifactID: "guava", Version: "31.1"}},
	}}}
}

func TestCheckPolicyCompliance(t *testing.T) {
	var got agentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(ComplianceVerdict{Rejections: []Rejection{
			{Project: "app", Library: "guava", Policy: "no-apache-2-exceptions"},
		}})
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, 1, proxy.NoProxy)
	require.NoError(t, err)
	defer c.Shutdown()

	verdict, err := c.CheckPolicyCompliance(context.Background(), "tok", "app", "1.0", testInventory(), true)
	require.NoError(t, err)
	assert.True(t, verdict.HasRejections())
	assert.Equal(t, requestCheckPolicies, got.Type)
	assert.True(t, got.ForceCheckAll)
	assert.Len(t, got.Projects, 1)
}

func TestUpdateInventory(t *testing.T) {
	var got agentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(PublishSummary{
			Organization:    "Acme Corp",
			CreatedProjects: []string{"app - 1.0"},
			RequestToken:    "rt-123",
		})
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, 1, proxy.NoProxy)
	require.NoError(t, err)
	defer c.Shutdown()

	summary, err := c.UpdateInventory(context.Background(), "tok", "dev@example.com", "app", "1.0", testInventory())
	require.NoError(t, err)
	assert.Equal(t, "Acme Corp", summary.Organization)
	assert.Equal(t, requestUpdateInventory, got.Type)
	assert.Equal(t, "dev@example.com", got.Requester)
}

func TestServiceErrorsAreCategorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "organization token is invalid", http.StatusUnauthorized)
	}))
	defer srv.Close()

	c, err := NewHTTPClient(srv.URL, 1, proxy.NoProxy)
	require.NoError(t, err)
	defer c.Shutdown()

	_, err = c.UpdateInventory(context.Background(), "bad", "", "app", "1.0", testInventory())
	require.Error(t, err)
	assert.True(t, gerrors.IsCategory(err, gerrors.CategoryService))
	assert.Contains(t, err.Error(), "401")
}
