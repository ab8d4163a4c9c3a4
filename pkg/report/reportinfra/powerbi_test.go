package reportinfra_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/report"
	"github.com/Abraxas-365/supplierportal/pkg/report/reportinfra"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticCredential struct {
	mu     sync.Mutex
	scopes []string
}

func (c *staticCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.scopes = append(c.scopes, opts.Scopes...)
	return azcore.AccessToken{Token: "aad-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

type captured struct {
	path          string
	authorization string
	body          map[string]any
}

func newProvider(t *testing.T, status int, reply string) (*reportinfra.PowerBIProvider, *captured, *staticCredential) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewTLSServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		got.authorization = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&got.body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(reply))
	}))
	t.Cleanup(srv.Close)

	cfg := config.PowerBIConfig{
		Provider:     "powerbi",
		WorkspaceID:  "ws-1",
		ReportID:     "rep-1",
		DatasetID:    "ds-1",
		APIBaseURL:   srv.URL + "/v1.0/myorg/",
		EmbedBaseURL: "https://app.powerbi.com/reportEmbed",
		TokenTTL:     time.Hour,
	}
	cred := &staticCredential{}
	p := reportinfra.NewPowerBIProvider(cred, cfg, &policy.ClientOptions{
		Transport: srv.Client(),
		Retry:     policy.RetryOptions{MaxRetries: -1},
	})
	return p, got, cred
}

func TestPowerBIProvider_EmbedToken(t *testing.T) {
	p, got, cred := newProvider(t, http.StatusOK,
		`{"token":"embed-abc","tokenId":"tok-1","expiration":"2026-03-01T10:00:00Z"}`)

	cfg, err := p.EmbedToken(context.Background(), report.Viewer{Email: "buyer@acme.com", AccountID: "acct-42"})
	require.NoError(t, err)

	assert.Equal(t, "embed-abc", cfg.Token)
	assert.Equal(t, "tok-1", cfg.TokenID)
	assert.Equal(t, "2026-03-01T10:00:00Z", cfg.Expiration)
	assert.Equal(t, "rep-1", cfg.ReportID)

	u, err := url.Parse(cfg.EmbedURL)
	require.NoError(t, err)
	assert.Equal(t, "rep-1", u.Query().Get("reportId"))
	assert.Equal(t, "ws-1", u.Query().Get("groupId"))

	assert.Equal(t, "/v1.0/myorg/GenerateToken", got.path)
	assert.Equal(t, "Bearer aad-token", got.authorization)
	assert.Contains(t, cred.scopes, reportinfra.PowerBIScope)

	identities := got.body["identities"].([]any)
	require.Len(t, identities, 1)
	identity := identities[0].(map[string]any)
	assert.Equal(t, "buyer@acme.com", identity["username"])
	assert.Equal(t, "acct-42", identity["customData"])
	assert.Equal(t, []any{"Supplier"}, identity["roles"])
	assert.Equal(t, []any{"ds-1"}, identity["datasets"])
	assert.Equal(t, float64(60), got.body["lifetimeInMinutes"])
}

func TestPowerBIProvider_UpstreamFailure(t *testing.T) {
	p, _, _ := newProvider(t, http.StatusForbidden, `{"error":{"code":"Forbidden"}}`)

	_, err := p.EmbedToken(context.Background(), report.Viewer{Email: "buyer@acme.com", AccountID: "acct-42"})
	require.Error(t, err)
	assert.True(t, errx.HasCode(err, report.CodeEmbedTokenFailed))
}

func TestMockProvider(t *testing.T) {
	p := reportinfra.NewMockProvider("", "https://app.powerbi.com/reportEmbed", 0)

	before := time.Now()
	cfg, err := p.EmbedToken(context.Background(), report.Viewer{Email: "buyer@acme.com", AccountID: "acct-42"})
	require.NoError(t, err)

	assert.Equal(t, "mock_embed_token", cfg.Token)
	assert.Equal(t, "mock_token_id", cfg.TokenID)
	assert.Equal(t, "mock-report-id", cfg.ReportID)
	assert.Equal(t, "https://app.powerbi.com/reportEmbed?reportId=mock-report-id", cfg.EmbedURL)

	exp, err := time.Parse(time.RFC3339, cfg.Expiration)
	require.NoError(t, err)
	assert.WithinDuration(t, before.Add(time.Hour), exp, 5*time.Second)
}
