package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func devConfig() *config.Config {
	return &config.Config{
		App:    config.AppConfig{Env: config.EnvDevelopment, Name: "Supplier Portal API", Version: "test"},
		Server: config.ServerConfig{CORSOrigins: "*", BodyLimit: 1 << 20, AuthRateLimit: 100, AuthRateWindow: time.Minute},
		Session: config.SessionConfig{
			Secret: "0123456789abcdef0123456789abcdef",
			TTL:    8 * time.Hour,
			Issuer: "supplierportal",
		},
		Passcode: config.PasscodeConfig{
			TTL:            10 * time.Minute,
			Store:          "memory",
			RetentionGrace: time.Minute,
			BcryptCost:     4,
			ExposeDevCode:  true,
		},
		Notifx:   config.NotifxConfig{Provider: "none"},
		Supplier: config.SupplierConfig{Source: "mock"},
		PowerBI: config.PowerBIConfig{
			Provider:     "mock",
			ReportID:     "mock-report-id",
			EmbedBaseURL: "https://app.powerbi.com/reportEmbed",
			TokenTTL:     time.Hour,
		},
	}
}

func do(t *testing.T, app *fiber.App, method, path, token, body string) (int, map[string]any, http.Header) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp.StatusCode, out, resp.Header
}

func TestPortal_EndToEnd(t *testing.T) {
	container := NewContainer(devConfig())
	app := newApp(container)

	for _, prefix := range []string{"", "/api"} {
		t.Run("prefix "+prefix, func(t *testing.T) {
			status, body, headers := do(t, app, http.MethodPost, prefix+"/sendOTP", "", `{"email":"Buyer@Acme.com"}`)
			require.Equal(t, http.StatusOK, status)
			assert.NotEmpty(t, headers.Get("X-Request-ID"))
			code := body["dev_otp"].(string)

			status, body, _ = do(t, app, http.MethodPost, prefix+"/verifyOTP", "", `{"email":"buyer@acme.com","code":"`+code+`"}`)
			require.Equal(t, http.StatusOK, status)
			token := body["token"].(string)
			assert.Equal(t, "buyer@acme.com", body["accountId"])

			status, body, _ = do(t, app, http.MethodGet, prefix+"/getSupplierData", token, "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, "buyer@acme.com", body["accountId"])

			status, body, _ = do(t, app, http.MethodGet, prefix+"/getPowerBIToken", token, "")
			require.Equal(t, http.StatusOK, status)
			assert.Equal(t, "mock_embed_token", body["token"])

			status, _, _ = do(t, app, http.MethodGet, prefix+"/getSupplierData", "", "")
			assert.Equal(t, http.StatusUnauthorized, status)
		})
	}
}

func TestPortal_OperationalEndpoints(t *testing.T) {
	app := newApp(NewContainer(devConfig()))

	status, body, _ := do(t, app, http.MethodGet, "/test", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Test function works!", body["message"])

	status, body, _ = do(t, app, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])

	status, body, _ = do(t, app, http.MethodGet, "/nope", "", "")
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body["code"])

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "supplierportal_http_requests_total")
}
