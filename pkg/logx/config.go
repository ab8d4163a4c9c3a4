package logx

import (
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

type Format string

const (
	FormatConsole Format = "console"
	FormatJSON    Format = "json"
)

// Config holds the logger configuration
type Config struct {
	Level  Level
	Format Format

	// Service is stamped on every JSON line
	Service string

	EnableColors bool
	EnableCaller bool
	TimeFormat   string
	Output       io.Writer
}

func DefaultConfig() *Config {
	return &Config{
		Level:        LevelInfo,
		Format:       FormatConsole,
		EnableColors: true,
		TimeFormat:   time.RFC3339,
		Output:       os.Stdout,
	}
}

// LoadFromEnv reads LOG_LEVEL, LOG_FORMAT, LOG_COLOR, LOG_CALLER and APP_NAME
func LoadFromEnv() *Config {
	cfg := DefaultConfig()

	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Level = ParseLevel(v)
	}
	if strings.EqualFold(os.Getenv("LOG_FORMAT"), string(FormatJSON)) {
		cfg.Format = FormatJSON
	}
	if v, err := strconv.ParseBool(os.Getenv("LOG_COLOR")); err == nil {
		cfg.EnableColors = v
	}
	if v, err := strconv.ParseBool(os.Getenv("LOG_CALLER")); err == nil {
		cfg.EnableCaller = v
	}
	cfg.Service = os.Getenv("APP_NAME")

	return cfg
}
