package otpsrv

import (
	"context"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam/auth"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/Abraxas-365/supplierportal/pkg/logx"
)

// Outcome labels reported to Metrics
const (
	OutcomeIssued            = "issued"
	OutcomeVerified          = "verified"
	OutcomeInvalidIdentity   = "invalid_identity"
	OutcomeAccountNotFound   = "account_not_found"
	OutcomeDeliveryFailed    = "delivery_failed"
	OutcomeMalformed         = "malformed"
	OutcomeNoOutstandingCode = "no_outstanding_code"
	OutcomeExpired           = "expired"
	OutcomeMismatch          = "mismatch"
	OutcomeError             = "error"
)

// Metrics receives one outcome per issuance and per verification
type Metrics interface {
	PasscodeRequested(outcome string)
	PasscodeVerified(outcome string)
}

type noopMetrics struct{}

func (noopMetrics) PasscodeRequested(string) {}
func (noopMetrics) PasscodeVerified(string)  {}

// RequestResult describes an issued passcode. DevCode is only set when no
// delivery channel exists and dev-code exposure is enabled.
type RequestResult struct {
	Identity  kernel.Email
	AccountID kernel.AccountID
	ExpiresAt time.Time
	DevCode   string
}

type OTPService struct {
	store     otp.Store
	directory otp.AccountDirectory
	hasher    otp.CodeHasher
	notifier  otp.NotificationService
	tokens    auth.TokenService

	ttl           time.Duration
	exposeDevCode bool
	now           func() time.Time
	metrics       Metrics
}

type Option func(*OTPService)

// WithClock overrides the time source
func WithClock(now func() time.Time) Option {
	return func(s *OTPService) { s.now = now }
}

// WithTTL sets how long an issued passcode stays valid
func WithTTL(ttl time.Duration) Option {
	return func(s *OTPService) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithDevCodeExposure returns the raw code from RequestCode when notifier is nil
func WithDevCodeExposure(enabled bool) Option {
	return func(s *OTPService) { s.exposeDevCode = enabled }
}

func WithMetrics(m Metrics) Option {
	return func(s *OTPService) {
		if m != nil {
			s.metrics = m
		}
	}
}

// NewOTPService wires the passcode lifecycle. notifier may be nil, in which
// case codes are stored but not delivered.
func NewOTPService(
	store otp.Store,
	directory otp.AccountDirectory,
	hasher otp.CodeHasher,
	notifier otp.NotificationService,
	tokens auth.TokenService,
	opts ...Option,
) *OTPService {
	s := &OTPService{
		store:     store,
		directory: directory,
		hasher:    hasher,
		notifier:  notifier,
		tokens:    tokens,
		ttl:       otp.DefaultTTL,
		now:       time.Now,
		metrics:   noopMetrics{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RequestCode issues a new passcode for rawIdentity, replacing any outstanding
// one, and delivers it.
func (s *OTPService) RequestCode(ctx context.Context, rawIdentity string) (*RequestResult, error) {
	identity, err := otp.NormalizeIdentity(rawIdentity)
	if err != nil {
		s.metrics.PasscodeRequested(OutcomeInvalidIdentity)
		return nil, err
	}

	accountID, found, err := s.directory.ResolveAccount(ctx, identity)
	if err != nil {
		s.metrics.PasscodeRequested(OutcomeError)
		return nil, errx.Wrap(err, "failed to resolve supplier account", errx.TypeInternal)
	}
	if !found {
		s.metrics.PasscodeRequested(OutcomeAccountNotFound)
		return nil, otp.ErrAccountNotFound()
	}

	code, err := otp.GenerateCode()
	if err != nil {
		s.metrics.PasscodeRequested(OutcomeError)
		return nil, errx.Wrap(err, "failed to generate passcode", errx.TypeInternal)
	}

	hash, err := s.hasher.Hash(code)
	if err != nil {
		s.metrics.PasscodeRequested(OutcomeError)
		return nil, errx.Wrap(err, "failed to hash passcode", errx.TypeInternal)
	}

	now := s.now()
	rec := otp.Record{
		CodeHash:  hash,
		AccountID: accountID,
		ExpiresAt: now.Add(s.ttl),
		IssuedAt:  now,
	}
	if err := s.store.Put(ctx, identity, rec); err != nil {
		s.metrics.PasscodeRequested(OutcomeError)
		return nil, errx.Wrap(err, "failed to store passcode", errx.TypeInternal)
	}

	result := &RequestResult{
		Identity:  identity,
		AccountID: accountID,
		ExpiresAt: rec.ExpiresAt,
	}

	if s.notifier == nil {
		if s.exposeDevCode {
			result.DevCode = code
		}
		logx.WithContext(ctx).WithField("account_id", accountID).
			Warn("No delivery channel configured, passcode not sent")
		s.metrics.PasscodeRequested(OutcomeIssued)
		return result, nil
	}

	if err := s.notifier.SendOTP(ctx, identity, code); err != nil {
		if _, delErr := s.store.CompareAndDelete(ctx, identity, rec); delErr != nil {
			logx.WithContext(ctx).WithError(delErr).Warn("Failed to discard undelivered passcode")
		}
		s.metrics.PasscodeRequested(OutcomeDeliveryFailed)
		return nil, otp.ErrRegistry.NewWithCause(otp.CodeDeliveryFailed, err)
	}

	s.metrics.PasscodeRequested(OutcomeIssued)
	return result, nil
}

// VerifyCode consumes the outstanding passcode for rawIdentity and mints a
// session credential bound to its account. A wrong code leaves the passcode
// in place until it expires.
func (s *OTPService) VerifyCode(ctx context.Context, rawIdentity, code string) (*auth.Session, error) {
	if rawIdentity == "" || code == "" || !otp.IsWellFormedCode(code) {
		s.metrics.PasscodeVerified(OutcomeMalformed)
		return nil, otp.ErrMalformedRequest()
	}
	identity := kernel.NewEmail(rawIdentity)

	rec, err := s.store.Get(ctx, identity)
	if err != nil {
		s.metrics.PasscodeVerified(OutcomeError)
		return nil, errx.Wrap(err, "failed to load passcode", errx.TypeInternal)
	}
	if rec == nil {
		s.metrics.PasscodeVerified(OutcomeNoOutstandingCode)
		return nil, otp.ErrNoOutstandingCode()
	}

	if rec.IsExpired(s.now()) {
		// only this record; a reissue since Get must survive
		if _, err := s.store.CompareAndDelete(ctx, identity, *rec); err != nil {
			s.metrics.PasscodeVerified(OutcomeError)
			return nil, errx.Wrap(err, "failed to remove expired passcode", errx.TypeInternal)
		}
		s.metrics.PasscodeVerified(OutcomeExpired)
		return nil, otp.ErrCodeExpired()
	}

	if !s.hasher.Matches(rec.CodeHash, code) {
		s.metrics.PasscodeVerified(OutcomeMismatch)
		return nil, otp.ErrCodeMismatch()
	}

	// a concurrent verify or reissue may have replaced the record since Get
	consumed, err := s.store.CompareAndDelete(ctx, identity, *rec)
	if err != nil {
		s.metrics.PasscodeVerified(OutcomeError)
		return nil, errx.Wrap(err, "failed to consume passcode", errx.TypeInternal)
	}
	if !consumed {
		s.metrics.PasscodeVerified(OutcomeNoOutstandingCode)
		return nil, otp.ErrNoOutstandingCode()
	}

	session, err := s.tokens.Issue(auth.SessionClaims{
		Email:     identity,
		AccountID: rec.AccountID,
		Role:      kernel.RoleSupplier,
	})
	if err != nil {
		s.metrics.PasscodeVerified(OutcomeError)
		return nil, err
	}

	s.metrics.PasscodeVerified(OutcomeVerified)
	return session, nil
}
