package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vqeverything/backend/internal/config"
)

// clearOptional blanks every optional variable so defaults are exercised
// regardless of what the host environment has set.
func clearOptional(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "LOG_LEVEL", "CORS_ORIGINS", "MAX_BODY_BYTES",
		"SESSION_SECRET", "GOOGLE_OAUTH_CLIENT_ID", "GOOGLE_OAUTH_CLIENT_SECRET",
		"OAUTH_REDIRECT_URL", "ADMIN_EMAIL",
	} {
		t.Setenv(key, "")
	}
}

// TestLoad_defaults verifies that optional env vars fall back to their defaults
// when only the required DATABASE_URL is provided.
func TestLoad_defaults(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "postgres://vq:vq@localhost:5432/vq")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, "postgres://vq:vq@localhost:5432/vq", cfg.DatabaseURL)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, int64(1<<20), cfg.MaxBodyBytes)
	require.Equal(t, "http://localhost:8080/auth/callback", cfg.OAuthRedirectURL)
	require.Equal(t, "admin@example.com", cfg.AdminEmail)
	require.False(t, cfg.AuthEnabled())
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "postgres://user:pass@db:5432/mydb")
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("MAX_BODY_BYTES", "4096")
	t.Setenv("ADMIN_EMAIL", "ops@example.com")
	t.Setenv("OAUTH_REDIRECT_URL", "https://vq.example.com/auth/callback")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, "postgres://user:pass@db:5432/mydb", cfg.DatabaseURL)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, int64(4096), cfg.MaxBodyBytes)
	require.Equal(t, "ops@example.com", cfg.AdminEmail)
	require.Equal(t, "https://vq.example.com/auth/callback", cfg.OAuthRedirectURL)
}

// TestLoad_missingRequired verifies that an error is returned when DATABASE_URL
// is not set, and that the error message names the missing variable.
func TestLoad_missingRequired(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "DATABASE_URL")
}

// TestLoad_authRequiresSessionSecret verifies that configuring OAuth without a
// session secret is rejected: there would be no key to sign sessions with.
func TestLoad_authRequiresSessionSecret(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "postgres://vq:vq@localhost:5432/vq")
	t.Setenv("GOOGLE_OAUTH_CLIENT_ID", "client-id")
	t.Setenv("GOOGLE_OAUTH_CLIENT_SECRET", "client-secret")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "SESSION_SECRET")
}

// TestLoad_invalidMaxBodyBytes verifies that a non-numeric body limit fails fast.
func TestLoad_invalidMaxBodyBytes(t *testing.T) {
	clearOptional(t)
	t.Setenv("DATABASE_URL", "postgres://vq:vq@localhost:5432/vq")
	t.Setenv("MAX_BODY_BYTES", "a-lot")

	_, err := config.Load()

	require.Error(t, err)
	require.ErrorContains(t, err, "MAX_BODY_BYTES")
}
