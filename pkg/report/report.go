package report

import (
	"context"
	"net/http"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// Viewer is the signed-in supplier the embed token is generated for. Reports
// apply row-level security from these values.
type Viewer struct {
	Email     kernel.Email
	AccountID kernel.AccountID
}

// EmbedConfig is what the client needs to embed the analytics report
type EmbedConfig struct {
	Token      string           `json:"token"`
	TokenID    string           `json:"tokenId"`
	Expiration string           `json:"expiration"`
	EmbedURL   string           `json:"embedUrl"`
	ReportID   string           `json:"reportId"`
	AccountID  kernel.AccountID `json:"accountId,omitempty"`
}

// Provider issues embed tokens restricted to one viewer
type Provider interface {
	EmbedToken(ctx context.Context, viewer Viewer) (*EmbedConfig, error)
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("REPORT")

var (
	CodeEmbedTokenFailed = ErrRegistry.Register("EMBED_TOKEN_FAILED", errx.TypeExternal, http.StatusBadGateway, "Failed to generate PowerBI embed token")
	CodeProviderConfig   = ErrRegistry.Register("PROVIDER_CONFIG", errx.TypeInternal, http.StatusInternalServerError, "Report provider is not configured")
)

func ErrEmbedTokenFailed() *errx.Error {
	return ErrRegistry.New(CodeEmbedTokenFailed)
}
