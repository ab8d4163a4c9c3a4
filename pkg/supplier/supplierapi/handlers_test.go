package supplierapi_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/supplier"
	"github.com/Abraxas-365/supplierportal/pkg/supplier/supplierapi"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type accountRepo struct {
	requested []kernel.AccountID
}

func (r *accountRepo) FindByAccount(_ context.Context, accountID kernel.AccountID) (*supplier.SupplierData, error) {
	r.requested = append(r.requested, accountID)
	if accountID == "acct-gone" {
		return nil, supplier.ErrNotFound()
	}
	return &supplier.SupplierData{
		AccountID:       accountID,
		SupplierName:    "Acme Foods",
		TotalDonations:  1,
		RecentDonations: []supplier.Donation{{Date: "2026-01-01", Items: 3, Weight: 1.5}},
	}, nil
}

func setup(t *testing.T) (*fiber.App, *auth.JWTService, *accountRepo) {
	t.Helper()
	tokens, err := auth.NewJWTService("0123456789abcdef0123456789abcdef", 8*time.Hour, "")
	require.NoError(t, err)

	repo := &accountRepo{}
	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler(false)})
	mw := auth.NewAuthMiddleware(tokens, nil)
	supplierapi.NewSupplierHandlers(repo).RegisterRoutes(app, mw.Authenticate())
	return app, tokens, repo
}

func call(t *testing.T, app *fiber.App, token string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/getSupplierData", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestGetSupplierData_ScopedToSession(t *testing.T) {
	app, tokens, repo := setup(t)
	session, err := tokens.Issue(auth.SessionClaims{Email: "buyer@acme.com", AccountID: "acct-acme"})
	require.NoError(t, err)

	status, body := call(t, app, session.Token)

	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acct-acme", body["accountId"])
	assert.Equal(t, "Acme Foods", body["supplierName"])
	assert.Len(t, body["recentDonations"], 1)
	assert.Equal(t, []kernel.AccountID{"acct-acme"}, repo.requested)
}

func TestGetSupplierData_RequiresSession(t *testing.T) {
	app, _, repo := setup(t)

	status, body := call(t, app, "")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized - No token provided", body["error"])

	status, body = call(t, app, "forged.token.value")
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized - Invalid token", body["error"])

	assert.Empty(t, repo.requested)
}

func TestGetSupplierData_NotFound(t *testing.T) {
	app, tokens, _ := setup(t)
	session, err := tokens.Issue(auth.SessionClaims{Email: "old@acme.com", AccountID: "acct-gone"})
	require.NoError(t, err)

	status, body := call(t, app, session.Token)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "SUPPLIER_NOT_FOUND", body["code"])
}
