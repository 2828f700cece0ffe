package config

import (
	"testing"
	"time"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("MKT_MASTER_KEY", "master")
	t.Setenv("MKT_IMAGE_STORE_URL", "https://img.example")
}

func TestLoadDefaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr, got %q", cfg.Addr)
	}
	if cfg.AdminTokenTTL != 12*time.Hour {
		t.Errorf("expected default token ttl, got %v", cfg.AdminTokenTTL)
	}
	if cfg.APIKey != "" {
		t.Errorf("expected no api key by default, got %q", cfg.APIKey)
	}
}

func TestLoadRequiresMasterKey(t *testing.T) {
	t.Setenv("MKT_MASTER_KEY", "")
	t.Setenv("MKT_IMAGE_STORE_URL", "https://img.example")

	if _, err := Load(); err == nil {
		t.Error("expected error without master key")
	}
}

func TestLoadRequiresImageStoreURL(t *testing.T) {
	t.Setenv("MKT_MASTER_KEY", "master")
	t.Setenv("MKT_IMAGE_STORE_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error without image store url")
	}
}

func TestLoadCaptchaNeedsVerifyURL(t *testing.T) {
	setRequired(t)
	t.Setenv("MKT_CAPTCHA_SECRET", "captcha")
	t.Setenv("MKT_CAPTCHA_VERIFY_URL", "")

	if _, err := Load(); err == nil {
		t.Error("expected error with captcha secret but no verify url")
	}
}

func TestLoadBadDuration(t *testing.T) {
	setRequired(t)
	t.Setenv("MKT_ADMIN_TOKEN_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Error("expected error for unparseable duration")
	}
}
