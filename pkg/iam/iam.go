package iam

import (
	"net/http"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
)

// ============================================================================
// Error Registry
// ============================================================================

var ErrRegistry = errx.NewRegistry("IAM")

var (
	CodeUnauthorized = ErrRegistry.Register("UNAUTHORIZED", errx.TypeAuthorization, http.StatusUnauthorized, "Unauthorized - No token provided")
	CodeAccessDenied = ErrRegistry.Register("ACCESS_DENIED", errx.TypeAuthorization, http.StatusForbidden, "Access denied")
	CodeRateLimited  = ErrRegistry.Register("RATE_LIMITED", errx.TypeBusiness, http.StatusTooManyRequests, "Too many requests, please try again later")
)

// Helper functions
func ErrUnauthorized() *errx.Error {
	return ErrRegistry.New(CodeUnauthorized)
}

func ErrAccessDenied() *errx.Error {
	return ErrRegistry.New(CodeAccessDenied)
}

func ErrRateLimited() *errx.Error {
	return ErrRegistry.New(CodeRateLimited)
}
