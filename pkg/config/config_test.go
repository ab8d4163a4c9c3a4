package config

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "SESSION_SECRET", "SESSION_TTL", "OTP_TTL", "OTP_STORE",
		"OTP_EXPOSE_DEV_CODE", "NOTIFX_PROVIDER", "SUPPLIER_SOURCE",
		"POWERBI_PROVIDER", "POWERBI_TENANT_ID", "POWERBI_CLIENT_ID",
		"POWERBI_CLIENT_SECRET", "POWERBI_DATASET_ID", "REDIS_PORT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, EnvDevelopment, cfg.App.Env)
	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.Equal(t, 10*time.Minute, cfg.Passcode.TTL)
	assert.Equal(t, "redis", cfg.Passcode.Store)
	assert.True(t, cfg.Passcode.ExposeDevCode)
	assert.Equal(t, "localhost:6379", cfg.Redis.Address())
	assert.Equal(t, "mock", cfg.Supplier.Source)
}

func TestLoad_RequiresSessionSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SESSION_SECRET is required")
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", "short")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 bytes")
}

func TestLoad_ProductionGuards(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("OTP_EXPOSE_DEV_CODE", "true")

	_, err := Load()
	require.Error(t, err)
	msg := err.Error()
	assert.True(t, strings.Contains(msg, "OTP_EXPOSE_DEV_CODE"))
	assert.True(t, strings.Contains(msg, "NOTIFX_PROVIDER must be 'ses'"))
	assert.True(t, strings.Contains(msg, "SUPPLIER_SOURCE must be 'postgres'"))
}

func TestLoad_ProductionDefaultsHideDevCode(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "production")
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("NOTIFX_PROVIDER", "ses")
	t.Setenv("SUPPLIER_SOURCE", "postgres")

	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.Passcode.ExposeDevCode)
	assert.True(t, cfg.App.IsProduction())
}

func TestLoad_PowerBIRequiresCredentials(t *testing.T) {
	clearEnv(t)
	t.Setenv("SESSION_SECRET", testSecret)
	t.Setenv("POWERBI_PROVIDER", "powerbi")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "POWERBI_TENANT_ID")
}

func TestNotifxConfig_HasDeliveryChannel(t *testing.T) {
	assert.True(t, NotifxConfig{Provider: "ses"}.HasDeliveryChannel())
	assert.False(t, NotifxConfig{Provider: "none"}.HasDeliveryChannel())
}
