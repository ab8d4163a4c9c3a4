package otp

import (
	"crypto/rand"
	"math/big"
	"regexp"
	"strconv"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/kernel"
)

const (
	// CodeLength is the number of digits in a passcode
	CodeLength = 6

	minCode = 100000
	maxCode = 999999

	DefaultTTL = 10 * time.Minute
)

var (
	identityPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	codePattern     = regexp.MustCompile(`^[0-9]{6}$`)
)

// Record is an outstanding passcode for one identity. The raw code is never
// stored, only its hash.
type Record struct {
	CodeHash  string           `json:"code_hash"`
	AccountID kernel.AccountID `json:"account_id"`
	ExpiresAt time.Time        `json:"expires_at"`
	IssuedAt  time.Time        `json:"issued_at"`
}

// IsExpired reports whether the record is past its expiry at now.
func (r *Record) IsExpired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// NormalizeIdentity validates the email shape of raw and returns it lowercased.
func NormalizeIdentity(raw string) (kernel.Email, error) {
	if raw == "" || !identityPattern.MatchString(raw) {
		return "", ErrInvalidIdentity()
	}
	return kernel.NewEmail(raw), nil
}

// IsWellFormedCode reports whether code is exactly six ASCII digits.
func IsWellFormedCode(code string) bool {
	return codePattern.MatchString(code)
}

// GenerateCode returns a uniformly random code in [100000, 999999].
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(maxCode-minCode+1))
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(n.Int64()+minCode, 10), nil
}
