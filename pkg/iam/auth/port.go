package auth

import (
	"context"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

// TokenService mints and verifies session credentials
type TokenService interface {
	Issue(claims SessionClaims) (*Session, error)
	Verify(token string) (*SessionClaims, error)
}

// AuditService defines the contract for authentication audit logging
type AuditService interface {
	LogPasscodeRequested(ctx context.Context, contact string, accountID kernel.AccountID, success bool, reason string, ip string)
	LogOTPVerification(ctx context.Context, contact string, success bool, reason string, ip string)
	LogSessionRejected(ctx context.Context, reason string, ip string)
}
