package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	// MinSessionSecretLength is the minimum accepted SESSION_SECRET size in bytes.
	MinSessionSecretLength = 32
)

// Config is the full application configuration, loaded from the environment.
type Config struct {
	App      AppConfig
	Server   ServerConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Session  SessionConfig
	Passcode PasscodeConfig
	Notifx   NotifxConfig
	Supplier SupplierConfig
	PowerBI  PowerBIConfig
}

type AppConfig struct {
	Env     string
	Name    string
	Version string
	Debug   bool
}

// IsProduction reports whether the API is deployed publicly.
func (a AppConfig) IsProduction() bool {
	return a.Env == EnvProduction
}

type ServerConfig struct {
	Port            string
	CORSOrigins     string
	BodyLimit       int
	ShutdownTimeout time.Duration
	AuthRateLimit   int
	AuthRateWindow  time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// Address returns host:port
func (r RedisConfig) Address() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// DSN returns a lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// SessionConfig configures the signed session credential.
type SessionConfig struct {
	Secret string
	TTL    time.Duration
	Issuer string
}

// PasscodeConfig configures passcode issuance and storage.
type PasscodeConfig struct {
	TTL time.Duration
	// Store is "redis" or "memory"
	Store string
	// RetentionGrace keeps expired records around so late submissions are
	// reported as expired rather than unknown.
	RetentionGrace time.Duration
	BcryptCost     int
	// ExposeDevCode returns the raw code in the API response when no delivery
	// channel is configured. Never allowed in production.
	ExposeDevCode bool
}

// SupplierConfig selects the supplier directory and data source.
type SupplierConfig struct {
	// Source is "mock" or "postgres"
	Source  string
	Migrate bool
}

// Load reads the configuration from environment variables and validates it.
func Load() (*Config, error) {
	env := strings.ToLower(getEnv("APP_ENV", EnvDevelopment))

	cfg := &Config{
		App: AppConfig{
			Env:     env,
			Name:    getEnv("APP_NAME", "Supplier Portal API"),
			Version: getEnv("APP_VERSION", "1.0.0"),
			Debug:   getEnvBool("DEBUG", false),
		},
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			CORSOrigins:     getEnv("CORS_ORIGINS", "*"),
			BodyLimit:       getEnvInt("BODY_LIMIT", 1024*1024),
			ShutdownTimeout: getEnvDuration("SHUTDOWN_TIMEOUT", 30*time.Second),
			AuthRateLimit:   getEnvInt("RATELIMIT_AUTH_MAX", 10),
			AuthRateWindow:  getEnvDuration("RATELIMIT_AUTH_WINDOW", time.Minute),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost"),
			Port:            getEnvInt("DB_PORT", 5432),
			User:            getEnv("DB_USER", "postgres"),
			Password:        getEnv("DB_PASSWORD", ""),
			Name:            getEnv("DB_NAME", "supplierportal"),
			SSLMode:         getEnv("DB_SSLMODE", "disable"),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Session: SessionConfig{
			Secret: os.Getenv("SESSION_SECRET"),
			TTL:    getEnvDuration("SESSION_TTL", 8*time.Hour),
			Issuer: getEnv("SESSION_ISSUER", "supplierportal"),
		},
		Passcode: PasscodeConfig{
			TTL:            getEnvDuration("OTP_TTL", 10*time.Minute),
			Store:          getEnv("OTP_STORE", "redis"),
			RetentionGrace: getEnvDuration("OTP_RETENTION_GRACE", 5*time.Minute),
			BcryptCost:     getEnvInt("OTP_BCRYPT_COST", 10),
			ExposeDevCode:  getEnvBool("OTP_EXPOSE_DEV_CODE", env != EnvProduction),
		},
		Notifx: loadNotifxConfig(),
		Supplier: SupplierConfig{
			Source:  getEnv("SUPPLIER_SOURCE", "mock"),
			Migrate: getEnvBool("DB_MIGRATE", false),
		},
		PowerBI: loadPowerBIConfig(),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for values that would make the service
// unsafe or incorrect to run.
func (c *Config) Validate() error {
	var errs []error

	switch {
	case c.Session.Secret == "":
		errs = append(errs, errors.New("SESSION_SECRET is required"))
	case len(c.Session.Secret) < MinSessionSecretLength:
		errs = append(errs, fmt.Errorf("SESSION_SECRET must be at least %d bytes", MinSessionSecretLength))
	}
	if c.Session.TTL <= 0 {
		errs = append(errs, errors.New("SESSION_TTL must be positive"))
	}
	if c.Passcode.TTL <= 0 {
		errs = append(errs, errors.New("OTP_TTL must be positive"))
	}

	switch c.Passcode.Store {
	case "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("unknown OTP_STORE %q (use 'redis' or 'memory')", c.Passcode.Store))
	}
	switch c.Notifx.Provider {
	case "ses", "console", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown NOTIFX_PROVIDER %q (use 'ses', 'console' or 'none')", c.Notifx.Provider))
	}
	switch c.Supplier.Source {
	case "mock", "postgres":
	default:
		errs = append(errs, fmt.Errorf("unknown SUPPLIER_SOURCE %q (use 'mock' or 'postgres')", c.Supplier.Source))
	}
	switch c.PowerBI.Provider {
	case "mock":
	case "powerbi":
		if c.PowerBI.TenantID == "" || c.PowerBI.ClientID == "" || c.PowerBI.ClientSecret == "" {
			errs = append(errs, errors.New("POWERBI_TENANT_ID, POWERBI_CLIENT_ID and POWERBI_CLIENT_SECRET are required for the powerbi provider"))
		}
		if c.PowerBI.ReportID == "" || c.PowerBI.DatasetID == "" {
			errs = append(errs, errors.New("POWERBI_REPORT_ID and POWERBI_DATASET_ID are required for the powerbi provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown POWERBI_PROVIDER %q (use 'mock' or 'powerbi')", c.PowerBI.Provider))
	}

	if c.App.IsProduction() {
		if c.Passcode.ExposeDevCode {
			errs = append(errs, errors.New("OTP_EXPOSE_DEV_CODE must be disabled in production"))
		}
		if c.Notifx.Provider != "ses" {
			errs = append(errs, errors.New("NOTIFX_PROVIDER must be 'ses' in production"))
		}
		if c.Passcode.Store != "redis" {
			errs = append(errs, errors.New("OTP_STORE must be 'redis' in production"))
		}
		if c.Supplier.Source != "postgres" {
			errs = append(errs, errors.New("SUPPLIER_SOURCE must be 'postgres' in production"))
		}
	}

	return errors.Join(errs...)
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
