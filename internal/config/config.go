package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	// Environment
	Env string // "development", "production", etc.

	// Server
	ServerAddr string
	BaseURL    string

	// Database
	DatabaseURL string

	// Redis (session + rate-limiter storage; empty = in-memory, dev only)
	RedisURL string

	// TLS
	TLSEnabled  bool
	TLSCertFile string
	TLSKeyFile  string
	TLSCAFile   string // enables mTLS when set

	// OIDC
	OIDCIssuer       string
	OIDCClientID     string
	OIDCClientSecret string
	OIDCRedirectURL  string

	// Session
	SessionSecret string // Used for signing cookies (min 32 chars)

	// CORS
	CORSOrigins string // Comma-separated allowed origins

	// Sharing
	ShareDefaultExpiry time.Duration // default share lifetime
	ShareMaxExpiry     time.Duration // upper bound on requested lifetimes
	CleanupInterval    time.Duration // expiry sweeper cadence

	// Roles
	MasterEmail string // email that is always assigned the master role

	// Site Branding
	SiteTitle  string // env: SITE_TITLE, default: "PropShare"
	SiteFooter string // env: SITE_FOOTER
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		Env:              getEnv("ENV", "development"),
		ServerAddr:       getEnv("SERVER_ADDR", ":3000"),
		BaseURL:          getEnv("BASE_URL", "http://localhost:3000"),
		DatabaseURL:      getEnv("DATABASE_URL", "postgres://localhost:5432/propshare?sslmode=disable"),
		RedisURL:         getEnv("REDIS_URL", ""),
		TLSEnabled:       getEnv("TLS_ENABLED", "") != "",
		TLSCertFile:      getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:       getEnv("TLS_KEY_FILE", ""),
		TLSCAFile:        getEnv("TLS_CA_FILE", ""),
		OIDCIssuer:       getEnv("OIDC_ISSUER", "https://accounts.google.com"),
		OIDCClientID:     getEnv("OIDC_CLIENT_ID", ""),
		OIDCClientSecret: getEnv("OIDC_CLIENT_SECRET", ""),
		OIDCRedirectURL:  getEnv("OIDC_REDIRECT_URL", "http://localhost:3000/auth/callback"),
		SessionSecret:    getEnv("SESSION_SECRET", "change-me-in-production-min-32-chars"),
		CORSOrigins:      getEnv("CORS_ORIGINS", ""),

		ShareDefaultExpiry: getEnvHours("SHARE_DEFAULT_EXPIRY_HOURS", 168),
		ShareMaxExpiry:     getEnvHours("SHARE_MAX_EXPIRY_HOURS", 720),
		CleanupInterval:    getEnvDuration("SHARE_CLEANUP_INTERVAL", time.Hour),

		MasterEmail: getEnv("MASTER_EMAIL", ""),

		SiteTitle:  getEnv("SITE_TITLE", "PropShare"),
		SiteFooter: getEnv("SITE_FOOTER", "PropShare - Property sharing for your team"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvHours(key string, fallback float64) time.Duration {
	if value := os.Getenv(key); value != "" {
		if hours, err := strconv.ParseFloat(value, 64); err == nil && hours > 0 {
			return time.Duration(hours * float64(time.Hour))
		}
	}
	return time.Duration(fallback * float64(time.Hour))
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}

// IsDev returns true if the environment is set to development.
func (c *Config) IsDev() bool {
	return c.Env == "development" || c.Env == "dev"
}
