package auth

import (
	"net/http"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// ============================================================================
// Session Types
// ============================================================================

// SessionClaims is what a session credential asserts about its holder.
type SessionClaims struct {
	ID        string           `json:"jti"`
	Email     kernel.Email     `json:"email"`
	AccountID kernel.AccountID `json:"accountId"`
	Role      kernel.Role      `json:"role"`
	IssuedAt  time.Time        `json:"iat"`
	ExpiresAt time.Time        `json:"exp"`
}

// Session is a freshly minted credential together with its claims.
type Session struct {
	Token  string
	Claims SessionClaims
}

// IsExpired checks if the claims have expired at now
func (s *SessionClaims) IsExpired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

// ToAuthContext converts verified claims into the per-request auth context
func (s *SessionClaims) ToAuthContext() *kernel.AuthContext {
	return &kernel.AuthContext{
		Email:     s.Email,
		AccountID: s.AccountID,
		Role:      s.Role,
		SessionID: s.ID,
	}
}

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("AUTH")

var (
	CodeInvalidSignature      = ErrRegistry.Register("INVALID_SIGNATURE", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized - Invalid token")
	CodeSessionExpired        = ErrRegistry.Register("SESSION_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized - Session expired")
	CodeTokenGenerationFailed = ErrRegistry.Register("TOKEN_GENERATION_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Token generation failed")
	CodeInvalidSecret         = ErrRegistry.Register("INVALID_SECRET", errx.TypeInternal, http.StatusInternalServerError, "Session signing secret is missing or too short")
)

func ErrInvalidSignature() *errx.Error {
	return ErrRegistry.New(CodeInvalidSignature)
}

func ErrSessionExpired() *errx.Error {
	return ErrRegistry.New(CodeSessionExpired)
}

func ErrTokenGenerationFailed() *errx.Error {
	return ErrRegistry.New(CodeTokenGenerationFailed)
}

func ErrInvalidSecret() *errx.Error {
	return ErrRegistry.New(CodeInvalidSecret)
}
