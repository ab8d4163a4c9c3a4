package iamcontainer

import (
	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth/authinfra"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp/otpapi"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp/otpinfra"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp/otpsrv"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

// ---------------------------------------------------------------------------
// Deps: external dependencies of the login context.
// ---------------------------------------------------------------------------

type Deps struct {
	Cfg *config.Config

	// Redis backs the passcode store when Cfg.Passcode.Store is "redis"
	Redis redis.UniversalClient

	// Directory resolves an email to its supplier account
	Directory otp.AccountDirectory

	// Notifier delivers passcodes. Nil means no delivery channel.
	Notifier otp.NotificationService

	// Metrics is optional
	Metrics otpsrv.Metrics
}

// ---------------------------------------------------------------------------
// Container: what cmd/ needs from the login context.
// ---------------------------------------------------------------------------

type Container struct {
	Store        otp.Store
	TokenService auth.TokenService
	OTPService   *otpsrv.OTPService

	OTPHandlers    *otpapi.OTPHandlers
	AuthMiddleware *auth.TokenMiddleware
	// RateLimiter guards the passcode routes per client IP
	RateLimiter fiber.Handler
}

// New builds the login graph: store, hasher, tokens, service, handlers,
// middleware. It fails when the session secret is unusable.
func New(deps Deps) (*Container, error) {
	logx.Info("🔧 Initializing IAM container...")

	c := &Container{}
	cfg := deps.Cfg

	// ── Passcode store ───────────────────────────────────────────────────

	switch cfg.Passcode.Store {
	case "redis":
		c.Store = otpinfra.NewRedisStore(deps.Redis, otpinfra.WithRetentionGrace(cfg.Passcode.RetentionGrace))
		logx.Info("  ✅ Using Redis passcode store")
	default:
		c.Store = otpinfra.NewMemoryStore(cfg.Passcode.RetentionGrace)
		logx.Warn("  ⚠️  Using in-memory passcode store (single instance only)")
	}

	// ── Session credentials ──────────────────────────────────────────────

	tokens, err := auth.NewJWTServiceFromConfig(&cfg.Session)
	if err != nil {
		return nil, err
	}
	c.TokenService = tokens

	// ── Services ─────────────────────────────────────────────────────────

	audit := authinfra.NewLogxAuditService()

	c.OTPService = otpsrv.NewOTPService(
		c.Store,
		deps.Directory,
		otpinfra.NewBcryptHasher(cfg.Passcode.BcryptCost),
		deps.Notifier,
		c.TokenService,
		otpsrv.WithTTL(cfg.Passcode.TTL),
		otpsrv.WithDevCodeExposure(cfg.Passcode.ExposeDevCode),
		otpsrv.WithMetrics(deps.Metrics),
	)
	if deps.Notifier == nil {
		logx.Warn("  ⚠️  No passcode delivery channel configured")
	}

	// ── Handlers & middleware ────────────────────────────────────────────

	c.OTPHandlers = otpapi.NewOTPHandlers(c.OTPService, audit)
	c.AuthMiddleware = auth.NewAuthMiddleware(c.TokenService, audit)
	c.RateLimiter = otpapi.NewRateLimiter(cfg.Server.AuthRateLimit, cfg.Server.AuthRateWindow)

	logx.Info("✅ IAM container initialized")
	return c, nil
}
