package config

import "time"

// PowerBIConfig configures analytics report embedding.
type PowerBIConfig struct {
	// Provider is "mock" or "powerbi"
	Provider     string
	TenantID     string
	ClientID     string
	ClientSecret string
	WorkspaceID  string
	ReportID     string
	DatasetID    string
	APIBaseURL   string
	EmbedBaseURL string
	TokenTTL     time.Duration
}

func loadPowerBIConfig() PowerBIConfig {
	return PowerBIConfig{
		Provider:     getEnv("POWERBI_PROVIDER", "mock"),
		TenantID:     getEnv("POWERBI_TENANT_ID", ""),
		ClientID:     getEnv("POWERBI_CLIENT_ID", ""),
		ClientSecret: getEnv("POWERBI_CLIENT_SECRET", ""),
		WorkspaceID:  getEnv("POWERBI_WORKSPACE_ID", ""),
		ReportID:     getEnv("POWERBI_REPORT_ID", "mock-report-id"),
		DatasetID:    getEnv("POWERBI_DATASET_ID", ""),
		APIBaseURL:   getEnv("POWERBI_API_BASE_URL", "https://api.powerbi.com/v1.0/myorg"),
		EmbedBaseURL: getEnv("POWERBI_EMBED_BASE_URL", "https://app.powerbi.com/reportEmbed"),
		TokenTTL:     getEnvDuration("POWERBI_TOKEN_TTL", time.Hour),
	}
}
