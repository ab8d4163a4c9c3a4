package otp

import (
	"net/http"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("OTP")

var (
	CodeInvalidIdentity   = ErrRegistry.Register("INVALID_IDENTITY", errx.TypeValidation, http.StatusBadRequest, "Valid email is required")
	CodeMalformedRequest  = ErrRegistry.Register("MALFORMED_REQUEST", errx.TypeValidation, http.StatusBadRequest, "Email and a 6-digit code are required")
	CodeAccountNotFound   = ErrRegistry.Register("ACCOUNT_NOT_FOUND", errx.TypeNotFound, http.StatusNotFound, "Supplier not found. Please contact support.")
	CodeNoOutstandingCode = ErrRegistry.Register("NO_OUTSTANDING_CODE", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid or expired OTP")
	CodeCodeExpired       = ErrRegistry.Register("CODE_EXPIRED", errx.TypeAuthorization, http.StatusUnauthorized, "OTP has expired")
	CodeCodeMismatch      = ErrRegistry.Register("CODE_MISMATCH", errx.TypeAuthorization, http.StatusUnauthorized, "Invalid OTP code")
	CodeDeliveryFailed    = ErrRegistry.Register("DELIVERY_FAILED", errx.TypeInternal, http.StatusInternalServerError, "Failed to send OTP")
)

func ErrInvalidIdentity() *errx.Error   { return ErrRegistry.New(CodeInvalidIdentity) }
func ErrMalformedRequest() *errx.Error  { return ErrRegistry.New(CodeMalformedRequest) }
func ErrAccountNotFound() *errx.Error   { return ErrRegistry.New(CodeAccountNotFound) }
func ErrNoOutstandingCode() *errx.Error { return ErrRegistry.New(CodeNoOutstandingCode) }
func ErrCodeExpired() *errx.Error       { return ErrRegistry.New(CodeCodeExpired) }
func ErrCodeMismatch() *errx.Error      { return ErrRegistry.New(CodeCodeMismatch) }
