package config

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SCOUT_API_BASE", "")
	t.Setenv("SCOUT_ENV", "")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v1", cfg.APIBase)
	assert.Equal(t, EnvDevelopment, cfg.Environment)
	assert.False(t, cfg.Secure())
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SCOUT_API_BASE", "https://api.example.com/v1/")
	t.Setenv("SCOUT_ENV", "production")
	t.Setenv("SCOUT_STRIPE_PUBLISHABLE_KEY", "pk_test_123")

	cfg, err := Load(zerolog.Nop())
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com/v1", cfg.APIBase)
	assert.Equal(t, "pk_test_123", cfg.StripePublishableKey)
	assert.True(t, cfg.Secure())
}

func TestLoad_RejectsRelativeBase(t *testing.T) {
	t.Setenv("SCOUT_API_BASE", "/api/v1")

	_, err := Load(zerolog.Nop())
	assert.Error(t, err)
}
