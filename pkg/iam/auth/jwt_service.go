package auth

import (
	"errors"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/config"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	DefaultSessionTTL = 8 * time.Hour
	defaultIssuer     = "supplierportal"
)

// JWTService implements TokenService with HS256 JWTs signed by a shared secret
type JWTService struct {
	secretKey []byte
	ttl       time.Duration
	issuer    string
	now       func() time.Time
}

// JWTOption customizes a JWTService
type JWTOption func(*JWTService)

// WithClock overrides the time source used for issuing and verifying
func WithClock(now func() time.Time) JWTOption {
	return func(j *JWTService) {
		j.now = now
	}
}

// NewJWTService creates the session codec. The secret must be the same on every
// instance, so a missing or short secret is rejected instead of replaced.
func NewJWTService(secretKey string, ttl time.Duration, issuer string, opts ...JWTOption) (*JWTService, error) {
	if len(secretKey) < config.MinSessionSecretLength {
		return nil, ErrInvalidSecret().WithDetail("min_length", config.MinSessionSecretLength)
	}
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	if issuer == "" {
		issuer = defaultIssuer
	}

	j := &JWTService{
		secretKey: []byte(secretKey),
		ttl:       ttl,
		issuer:    issuer,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j, nil
}

// NewJWTServiceFromConfig creates the session codec from session config
func NewJWTServiceFromConfig(cfg *config.SessionConfig, opts ...JWTOption) (*JWTService, error) {
	return NewJWTService(cfg.Secret, cfg.TTL, cfg.Issuer, opts...)
}

// jwtClaims is the wire form of SessionClaims
type jwtClaims struct {
	Email     kernel.Email     `json:"email"`
	AccountID kernel.AccountID `json:"accountId"`
	Role      kernel.Role      `json:"role"`
	jwt.RegisteredClaims
}

// Issue signs claims into a token expiring ttl from now. ID, IssuedAt and
// ExpiresAt on the input are ignored and filled in.
func (j *JWTService) Issue(claims SessionClaims) (*Session, error) {
	now := j.now()
	if claims.Role == "" {
		claims.Role = kernel.RoleSupplier
	}

	registered := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Issuer:    j.issuer,
		Subject:   claims.AccountID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(j.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims{
		Email:            claims.Email,
		AccountID:        claims.AccountID,
		Role:             claims.Role,
		RegisteredClaims: registered,
	})

	signed, err := token.SignedString(j.secretKey)
	if err != nil {
		return nil, ErrRegistry.NewWithCause(CodeTokenGenerationFailed, err)
	}

	claims.ID = registered.ID
	claims.IssuedAt = registered.IssuedAt.Time
	claims.ExpiresAt = registered.ExpiresAt.Time

	return &Session{Token: signed, Claims: claims}, nil
}

// Verify checks signature, algorithm, issuer and expiry and returns the claims
func (j *JWTService) Verify(tokenString string) (*SessionClaims, error) {
	parsed := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, parsed, func(*jwt.Token) (any, error) {
		return j.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(j.issuer),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrRegistry.NewWithCause(CodeSessionExpired, err)
		}
		return nil, ErrRegistry.NewWithCause(CodeInvalidSignature, err)
	}

	if parsed.AccountID.IsEmpty() || parsed.Email.IsEmpty() {
		return nil, ErrInvalidSignature().WithDetail("reason", "missing account binding")
	}

	claims := &SessionClaims{
		ID:        parsed.ID,
		Email:     parsed.Email,
		AccountID: parsed.AccountID,
		Role:      parsed.Role,
		ExpiresAt: parsed.ExpiresAt.Time,
	}
	if parsed.IssuedAt != nil {
		claims.IssuedAt = parsed.IssuedAt.Time
	}
	return claims, nil
}
