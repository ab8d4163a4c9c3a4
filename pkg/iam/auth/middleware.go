package auth

import (
	"context"
	"strings"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

// TokenMiddleware authenticates requests carrying a session credential
type TokenMiddleware struct {
	tokenService TokenService
	audit        AuditService
}

// NewAuthMiddleware creates the middleware. audit may be nil.
func NewAuthMiddleware(tokenService TokenService, audit AuditService) *TokenMiddleware {
	return &TokenMiddleware{
		tokenService: tokenService,
		audit:        audit,
	}
}

// Authenticate requires "Authorization: Bearer <token>" and stores the
// verified caller in locals under kernel.AuthContextKey.
func (am *TokenMiddleware) Authenticate() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := bearerToken(c.Get(fiber.HeaderAuthorization))
		if !ok {
			am.rejected(c, "missing bearer token")
			return iam.ErrUnauthorized()
		}

		claims, err := am.tokenService.Verify(token)
		if err != nil {
			reason := "invalid token"
			if errx.HasCode(err, CodeSessionExpired) {
				reason = "expired token"
			}
			am.rejected(c, reason)
			return err
		}

		authCtx := claims.ToAuthContext()
		c.Locals(kernel.AuthContextKey, authCtx)
		c.SetUserContext(context.WithValue(c.UserContext(), kernel.AuthContextKey, authCtx))

		return c.Next()
	}
}

// RequireRole rejects callers whose session does not carry role
func (am *TokenMiddleware) RequireRole(role kernel.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return iam.ErrUnauthorized()
		}
		if !authCtx.HasRole(role) {
			return iam.ErrAccessDenied().WithDetail("required_role", role)
		}
		return c.Next()
	}
}

// GetAuthContext returns the caller set by Authenticate
func GetAuthContext(c *fiber.Ctx) (*kernel.AuthContext, bool) {
	authCtx, ok := c.Locals(kernel.AuthContextKey).(*kernel.AuthContext)
	if !ok || !authCtx.IsValid() {
		return nil, false
	}
	return authCtx, true
}

func (am *TokenMiddleware) rejected(c *fiber.Ctx, reason string) {
	if am.audit != nil {
		am.audit.LogSessionRejected(c.UserContext(), reason, c.IP())
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
