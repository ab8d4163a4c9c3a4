package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingAudit struct {
	mu       sync.Mutex
	rejected []string
}

func (a *recordingAudit) LogPasscodeRequested(context.Context, string, kernel.AccountID, bool, string, string) {
}

func (a *recordingAudit) LogOTPVerification(context.Context, string, bool, string, string) {}

func (a *recordingAudit) LogSessionRejected(_ context.Context, reason string, _ string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.rejected = append(a.rejected, reason)
}

func newProtectedApp(svc auth.TokenService, audit auth.AuditService) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: errx.FiberErrorHandler(false)})
	mw := auth.NewAuthMiddleware(svc, audit)

	app.Get("/me", mw.Authenticate(), mw.RequireRole(kernel.RoleSupplier), func(c *fiber.Ctx) error {
		authCtx, ok := auth.GetAuthContext(c)
		if !ok {
			return fiber.ErrUnauthorized
		}
		return c.JSON(authCtx)
	})
	return app
}

func get(t *testing.T, app *fiber.App, authorization string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

func TestAuthenticate_ValidToken(t *testing.T) {
	svc := newService(t, &fakeClock{now: time.Now().Truncate(time.Second)})
	session, err := svc.Issue(supplierClaims())
	require.NoError(t, err)

	status, body := get(t, newProtectedApp(svc, nil), "Bearer "+session.Token)

	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "acct-42", body["accountId"])
	assert.Equal(t, "buyer@acme.com", body["email"])
	assert.Equal(t, "supplier", body["role"])
}

func TestAuthenticate_Rejections(t *testing.T) {
	clock := &fakeClock{now: t0}
	svc := newService(t, clock)
	session, err := svc.Issue(supplierClaims())
	require.NoError(t, err)

	tests := []struct {
		name    string
		header  string
		advance time.Duration
		code    string
		reason  string
	}{
		{name: "missing header", header: "", code: "IAM_UNAUTHORIZED", reason: "missing bearer token"},
		{name: "wrong scheme", header: "Basic " + session.Token, code: "IAM_UNAUTHORIZED", reason: "missing bearer token"},
		{name: "empty bearer", header: "Bearer ", code: "IAM_UNAUTHORIZED", reason: "missing bearer token"},
		{name: "garbage token", header: "Bearer not.a.token", code: "AUTH_INVALID_SIGNATURE", reason: "invalid token"},
		{name: "expired token", header: "Bearer " + session.Token, advance: 9 * time.Hour, code: "AUTH_SESSION_EXPIRED", reason: "expired token"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clock.now = t0.Add(tt.advance)
			audit := &recordingAudit{}

			status, body := get(t, newProtectedApp(svc, audit), tt.header)

			assert.Equal(t, http.StatusUnauthorized, status)
			assert.Equal(t, tt.code, body["code"])
			assert.Equal(t, []string{tt.reason}, audit.rejected)
		})
	}
}

func TestRequireRole_Forbidden(t *testing.T) {
	svc := newService(t, &fakeClock{now: time.Now().Truncate(time.Second)})
	claims := supplierClaims()
	claims.Role = "viewer"
	session, err := svc.Issue(claims)
	require.NoError(t, err)

	status, body := get(t, newProtectedApp(svc, nil), "Bearer "+session.Token)

	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "IAM_ACCESS_DENIED", body["code"])
}
