// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SessionSecret signs the session JWT cookie. Required when login
	// is enabled (i.e. when the Google OAuth client is configured).
	SessionSecret string

	// GoogleClientID and GoogleClientSecret identify this app to Google's
	// OAuth 2.0 endpoint. Leave both empty to run without login; the API
	// then only accepts anonymous submissions.
	GoogleClientID     string
	GoogleClientSecret string

	// OAuthRedirectURL is the callback URL registered with Google.
	// Defaults to http://localhost:<Port>/auth/callback.
	OAuthRedirectURL string

	// AdminEmail identifies the administrator account, which may delete
	// any submission. Defaults to "admin@example.com".
	AdminEmail string
}

// AuthEnabled reports whether Google login is configured.
func (c Config) AuthEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}

// Load reads configuration from environment variables and returns a Config.
// A .env file in the working directory is loaded first when present, so
// local development matches the deployed environment-variable contract.
// Returns an error listing any required variables that are not set.
func Load() (Config, error) {
	// A missing .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		SessionSecret:      os.Getenv("SESSION_SECRET"),
		GoogleClientID:     os.Getenv("GOOGLE_OAUTH_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_OAUTH_CLIENT_SECRET"),
		AdminEmail:         getEnv("ADMIN_EMAIL", "admin@example.com"),
	}
	cfg.OAuthRedirectURL = getEnv("OAUTH_REDIRECT_URL", "http://localhost:"+cfg.Port+"/auth/callback")

	const defaultMaxBody = 1 << 20 // 1 MiB
	cfg.MaxBodyBytes = defaultMaxBody
	if v := os.Getenv("MAX_BODY_BYTES"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil || n <= 0 {
			return Config{}, fmt.Errorf("invalid MAX_BODY_BYTES %q", v)
		}
		cfg.MaxBodyBytes = n
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	// The session secret is only required once login is configured, because
	// without OAuth credentials there is no session to sign.
	if cfg.AuthEnabled() && cfg.SessionSecret == "" {
		missing = append(missing, "SESSION_SECRET")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
