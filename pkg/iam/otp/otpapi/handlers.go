package otpapi

import (
	"context"
	"errors"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp/otpsrv"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// Service is the passcode lifecycle used by the handlers
type Service interface {
	RequestCode(ctx context.Context, rawIdentity string) (*otpsrv.RequestResult, error)
	VerifyCode(ctx context.Context, rawIdentity, code string) (*auth.Session, error)
}

type SendOTPRequest struct {
	Email string `json:"email"`
}

type SendOTPResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	DevOTP  string `json:"dev_otp,omitempty"`
}

type VerifyOTPRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

type VerifyOTPResponse struct {
	Success   bool   `json:"success"`
	Token     string `json:"token"`
	AccountID string `json:"accountId"`
	Email     string `json:"email"`
}

// OTPHandlers exposes passcode login over HTTP
type OTPHandlers struct {
	service Service
	audit   auth.AuditService
}

// NewOTPHandlers creates the handlers. audit may be nil.
func NewOTPHandlers(service Service, audit auth.AuditService) *OTPHandlers {
	return &OTPHandlers{service: service, audit: audit}
}

// RegisterRoutes mounts POST /sendOTP and POST /verifyOTP on router. Extra
// middleware, typically a rate limiter, runs before both.
func (h *OTPHandlers) RegisterRoutes(router fiber.Router, middleware ...fiber.Handler) {
	send := append(append([]fiber.Handler{}, middleware...), h.SendOTP)
	verify := append(append([]fiber.Handler{}, middleware...), h.VerifyOTP)

	router.Post("/sendOTP", send...)
	router.Post("/verifyOTP", verify...)
}

// SendOTP issues a passcode for the posted email
func (h *OTPHandlers) SendOTP(c *fiber.Ctx) error {
	var req SendOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return otp.ErrInvalidIdentity().WithDetail("reason", "invalid request body")
	}

	ctx := c.UserContext()
	result, err := h.service.RequestCode(ctx, req.Email)
	if err != nil {
		if h.audit != nil {
			h.audit.LogPasscodeRequested(ctx, req.Email, "", false, errorCode(err), c.IP())
		}
		return err
	}

	if h.audit != nil {
		h.audit.LogPasscodeRequested(ctx, result.Identity.String(), result.AccountID, true, "", c.IP())
	}

	return c.JSON(SendOTPResponse{
		Success: true,
		Message: "OTP sent successfully",
		DevOTP:  result.DevCode,
	})
}

// VerifyOTP exchanges a passcode for a session credential
func (h *OTPHandlers) VerifyOTP(c *fiber.Ctx) error {
	var req VerifyOTPRequest
	if err := c.BodyParser(&req); err != nil {
		return otp.ErrMalformedRequest().WithDetail("reason", "invalid request body")
	}

	ctx := c.UserContext()
	session, err := h.service.VerifyCode(ctx, req.Email, req.Code)
	if err != nil {
		if h.audit != nil {
			h.audit.LogOTPVerification(ctx, req.Email, false, errorCode(err), c.IP())
		}
		return err
	}

	if h.audit != nil {
		h.audit.LogOTPVerification(ctx, session.Claims.Email.String(), true, "", c.IP())
	}

	return c.JSON(VerifyOTPResponse{
		Success:   true,
		Token:     session.Token,
		AccountID: session.Claims.AccountID.String(),
		Email:     session.Claims.Email.String(),
	})
}

// NewRateLimiter limits passcode requests per client IP
func NewRateLimiter(max int, window time.Duration) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: window,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return iam.ErrRateLimited().WithDetail("retry_after", window.String())
		},
	})
}

func errorCode(err error) string {
	var e *errx.Error
	if errors.As(err, &e) {
		return e.Code
	}
	return "INTERNAL"
}
