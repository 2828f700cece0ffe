// Package config loads server configuration from the environment. Secrets
// (master key, shared API key, image host credentials, CAPTCHA secret) are
// injected here and never appear as literals anywhere in the source tree.
package config

import (
	"fmt"
	"os"
	"time"
)

// Config holds all server settings, loaded once at startup.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string
	// DBPath is the SQLite database file.
	DBPath string

	// MasterKey is the superuser secret: it overrides every per-item
	// delete key and gates the admin surface. Required.
	MasterKey string
	// APIKey is an optional shared secret gating read endpoints. Empty
	// leaves them public.
	APIKey string

	// ImageStoreURL is the external image host's API root. Required.
	ImageStoreURL string
	// ImageStoreKey and ImageStoreSecret authenticate against the host.
	ImageStoreKey    string
	ImageStoreSecret string

	// CaptchaSecret enables CAPTCHA verification on item creation when
	// set. CaptchaVerifyURL is the verification endpoint.
	CaptchaSecret    string
	CaptchaVerifyURL string

	// AdminTokenTTL is the lifetime of admin tokens from /admin/login.
	AdminTokenTTL time.Duration
	// ShutdownTimeout bounds graceful shutdown.
	ShutdownTimeout time.Duration
}

// Load reads configuration from environment variables. It fails when a
// required variable is missing or a value does not parse.
func Load() (*Config, error) {
	cfg := &Config{
		Addr:             getEnvDefault("MKT_ADDR", ":8080"),
		DBPath:           getEnvDefault("MKT_DB_PATH", "marketplace.sqlite3"),
		MasterKey:        os.Getenv("MKT_MASTER_KEY"),
		APIKey:           os.Getenv("MKT_API_KEY"),
		ImageStoreURL:    os.Getenv("MKT_IMAGE_STORE_URL"),
		ImageStoreKey:    os.Getenv("MKT_IMAGE_STORE_KEY"),
		ImageStoreSecret: os.Getenv("MKT_IMAGE_STORE_SECRET"),
		CaptchaSecret:    os.Getenv("MKT_CAPTCHA_SECRET"),
		CaptchaVerifyURL: os.Getenv("MKT_CAPTCHA_VERIFY_URL"),
	}

	if cfg.MasterKey == "" {
		return nil, fmt.Errorf("MKT_MASTER_KEY is required")
	}
	if cfg.ImageStoreURL == "" {
		return nil, fmt.Errorf("MKT_IMAGE_STORE_URL is required")
	}
	if cfg.CaptchaSecret != "" && cfg.CaptchaVerifyURL == "" {
		return nil, fmt.Errorf("MKT_CAPTCHA_VERIFY_URL is required when MKT_CAPTCHA_SECRET is set")
	}

	var err error
	cfg.AdminTokenTTL, err = getEnvDuration("MKT_ADMIN_TOKEN_TTL", 12*time.Hour)
	if err != nil {
		return nil, fmt.Errorf("MKT_ADMIN_TOKEN_TTL: %w", err)
	}
	cfg.ShutdownTimeout, err = getEnvDuration("MKT_SHUTDOWN_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, fmt.Errorf("MKT_SHUTDOWN_TIMEOUT: %w", err)
	}

	return cfg, nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration %q: %w", v, err)
	}
	return d, nil
}
