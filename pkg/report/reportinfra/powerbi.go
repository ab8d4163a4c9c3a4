package reportinfra

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/report"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	moduleName    = "reportinfra"
	moduleVersion = "v1.0.0"

	// PowerBIScope is the AAD scope for the PowerBI REST API
	PowerBIScope = "https://analysis.windows.net/powerbi/api/.default"

	// SupplierRole is the dataset RLS role applied to every embed token
	SupplierRole = "Supplier"
)

type generateTokenRequest struct {
	Datasets          []datasetRef  `json:"datasets"`
	Reports           []reportRef   `json:"reports"`
	Identities        []rlsIdentity `json:"identities"`
	LifetimeInMinutes int           `json:"lifetimeInMinutes,omitempty"`
}

type datasetRef struct {
	ID string `json:"id"`
}

type reportRef struct {
	ID string `json:"id"`
}

type rlsIdentity struct {
	Username   string   `json:"username"`
	Roles      []string `json:"roles"`
	Datasets   []string `json:"datasets"`
	CustomData string   `json:"customData,omitempty"`
}

type generateTokenResponse struct {
	Token      string `json:"token"`
	TokenID    string `json:"tokenId"`
	Expiration string `json:"expiration"`
}

// PowerBIProvider generates embed tokens through the PowerBI REST API,
// authenticating as an AAD service principal.
type PowerBIProvider struct {
	pipeline     runtime.Pipeline
	apiBaseURL   string
	embedBaseURL string
	workspaceID  string
	reportID     string
	datasetID    string
	ttl          time.Duration
}

// NewPowerBIProvider builds the provider on an arbitrary credential. options
// may be nil.
func NewPowerBIProvider(cred azcore.TokenCredential, cfg config.PowerBIConfig, options *policy.ClientOptions) *PowerBIProvider {
	pl := runtime.NewPipeline(moduleName, moduleVersion, runtime.PipelineOptions{
		PerRetry: []policy.Policy{
			runtime.NewBearerTokenPolicy(cred, []string{PowerBIScope}, nil),
		},
	}, options)

	return &PowerBIProvider{
		pipeline:     pl,
		apiBaseURL:   strings.TrimRight(cfg.APIBaseURL, "/"),
		embedBaseURL: cfg.EmbedBaseURL,
		workspaceID:  cfg.WorkspaceID,
		reportID:     cfg.ReportID,
		datasetID:    cfg.DatasetID,
		ttl:          cfg.TokenTTL,
	}
}

// NewPowerBIProviderFromConfig authenticates with the configured client secret
func NewPowerBIProviderFromConfig(cfg config.PowerBIConfig) (*PowerBIProvider, error) {
	cred, err := azidentity.NewClientSecretCredential(cfg.TenantID, cfg.ClientID, cfg.ClientSecret, nil)
	if err != nil {
		return nil, report.ErrRegistry.NewWithCause(report.CodeProviderConfig, err)
	}
	return NewPowerBIProvider(cred, cfg, nil), nil
}

func (p *PowerBIProvider) EmbedToken(ctx context.Context, viewer report.Viewer) (*report.EmbedConfig, error) {
	body := generateTokenRequest{
		Datasets: []datasetRef{{ID: p.datasetID}},
		Reports:  []reportRef{{ID: p.reportID}},
		Identities: []rlsIdentity{{
			Username:   viewer.Email.String(),
			Roles:      []string{SupplierRole},
			Datasets:   []string{p.datasetID},
			CustomData: viewer.AccountID.String(),
		}},
		LifetimeInMinutes: int(p.ttl.Minutes()),
	}

	req, err := runtime.NewRequest(ctx, http.MethodPost, p.apiBaseURL+"/GenerateToken")
	if err != nil {
		return nil, report.ErrRegistry.NewWithCause(report.CodeEmbedTokenFailed, err)
	}
	if err := runtime.MarshalAsJSON(req, body); err != nil {
		return nil, report.ErrRegistry.NewWithCause(report.CodeEmbedTokenFailed, err)
	}

	resp, err := p.pipeline.Do(req)
	if err != nil {
		return nil, report.ErrRegistry.NewWithCause(report.CodeEmbedTokenFailed, err)
	}
	if !runtime.HasStatusCode(resp, http.StatusOK) {
		return nil, report.ErrRegistry.NewWithCause(report.CodeEmbedTokenFailed, runtime.NewResponseError(resp)).
			WithDetail("status", resp.StatusCode)
	}

	var out generateTokenResponse
	if err := runtime.UnmarshalAsJSON(resp, &out); err != nil {
		return nil, report.ErrRegistry.NewWithCause(report.CodeEmbedTokenFailed, err)
	}

	return &report.EmbedConfig{
		Token:      out.Token,
		TokenID:    out.TokenID,
		Expiration: out.Expiration,
		EmbedURL:   embedURL(p.embedBaseURL, p.reportID, p.workspaceID),
		ReportID:   p.reportID,
		AccountID:  viewer.AccountID,
	}, nil
}
