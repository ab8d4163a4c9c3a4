package otp_test

import (
	"strconv"
	"testing"
	"time"

	"github.com/Abraxas-365/supplierportal/pkg/errx"
	"github.com/Abraxas-365/supplierportal/pkg/iam/otp"
	"github.com/Abraxas-365/supplierportal/pkg/kernel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeIdentity(t *testing.T) {
	got, err := otp.NormalizeIdentity("User@Example.com")
	require.NoError(t, err)
	assert.Equal(t, kernel.Email("user@example.com"), got)
}

func TestNormalizeIdentity_Rejects(t *testing.T) {
	for _, raw := range []string{
		"",
		"plainaddress",
		"@example.com",
		"user@",
		"user@example",
		"user name@example.com",
		"user@@example.com",
	} {
		_, err := otp.NormalizeIdentity(raw)
		assert.True(t, errx.HasCode(err, otp.CodeInvalidIdentity), "expected %q to be rejected", raw)
	}
}

func TestIsWellFormedCode(t *testing.T) {
	assert.True(t, otp.IsWellFormedCode("123456"))
	assert.True(t, otp.IsWellFormedCode("000000"))
	assert.False(t, otp.IsWellFormedCode("12345"))
	assert.False(t, otp.IsWellFormedCode("1234567"))
	assert.False(t, otp.IsWellFormedCode("12a456"))
	assert.False(t, otp.IsWellFormedCode(" 123456"))
	assert.False(t, otp.IsWellFormedCode("١٢٣٤٥٦"))
}

func TestGenerateCode_RangeAndFormat(t *testing.T) {
	for range 2000 {
		code, err := otp.GenerateCode()
		require.NoError(t, err)
		require.Len(t, code, otp.CodeLength)
		require.True(t, otp.IsWellFormedCode(code))

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		require.GreaterOrEqual(t, n, 100000)
		require.LessOrEqual(t, n, 999999)
	}
}

func TestRecord_IsExpired(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	rec := otp.Record{ExpiresAt: now}

	assert.False(t, rec.IsExpired(now))
	assert.True(t, rec.IsExpired(now.Add(time.Nanosecond)))
}
