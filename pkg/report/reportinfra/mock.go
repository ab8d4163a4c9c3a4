package reportinfra

import (
	"context"
	"net/url"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/report"
)

// MockProvider returns a placeholder embed token for local development
type MockProvider struct {
	reportID     string
	embedBaseURL string
	ttl          time.Duration
	now          func() time.Time
}

func NewMockProvider(reportID, embedBaseURL string, ttl time.Duration) *MockProvider {
	if reportID == "" {
		reportID = "mock-report-id"
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &MockProvider{
		reportID:     reportID,
		embedBaseURL: embedBaseURL,
		ttl:          ttl,
		now:          time.Now,
	}
}

func (p *MockProvider) EmbedToken(_ context.Context, viewer report.Viewer) (*report.EmbedConfig, error) {
	return &report.EmbedConfig{
		Token:      "mock_embed_token",
		TokenID:    "mock_token_id",
		Expiration: p.now().Add(p.ttl).UTC().Format(time.RFC3339),
		EmbedURL:   embedURL(p.embedBaseURL, p.reportID, ""),
		ReportID:   p.reportID,
		AccountID:  viewer.AccountID,
	}, nil
}

func embedURL(base, reportID, workspaceID string) string {
	q := url.Values{}
	q.Set("reportId", reportID)
	if workspaceID != "" {
		q.Set("groupId", workspaceID)
	}
	return base + "?" + q.Encode()
}
