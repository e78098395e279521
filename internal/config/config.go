package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

const EnvDevelopment = "development"

type Config struct {
	APIBase              string
	SiteURL              string
	StripePublishableKey string
	Environment          string
	SessionDBPath        string
	LogLevel             string

	// mock backend
	MockAPIPort   string
	MockJWTSecret string
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	cfg := &Config{
		APIBase:              strings.TrimRight(getEnv("SCOUT_API_BASE", "http://localhost:8080/api/v1"), "/"),
		SiteURL:              getEnv("SCOUT_SITE_URL", "http://localhost:3000"),
		StripePublishableKey: getEnv("SCOUT_STRIPE_PUBLISHABLE_KEY", ""),
		Environment:          getEnv("SCOUT_ENV", EnvDevelopment),
		SessionDBPath:        getEnv("SCOUT_SESSION_DB", "scout-session.db"),
		LogLevel:             getEnv("LOG_LEVEL", "info"),
		MockAPIPort:          getEnv("MOCK_API_PORT", "8080"),
		MockJWTSecret:        getEnv("MOCK_JWT_SECRET", "dev-secret-change-me"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Info().
		Str("api_base", cfg.APIBase).
		Str("site_url", cfg.SiteURL).
		Str("environment", cfg.Environment).
		Str("session_db", cfg.SessionDBPath).
		Str("log_level", cfg.LogLevel).
		Bool("stripe_key_set", cfg.StripePublishableKey != "").
		Msg("configuration loaded")

	return cfg, nil
}

func (c *Config) Validate() error {
	u, err := url.Parse(c.APIBase)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("SCOUT_API_BASE must be an absolute URL, got %q", c.APIBase)
	}
	if c.SessionDBPath == "" {
		return fmt.Errorf("SCOUT_SESSION_DB is required")
	}
	return nil
}

// Secure reports whether persisted tokens must be marked secure.
func (c *Config) Secure() bool {
	return c.Environment != EnvDevelopment
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
