package config

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/wardenauth/warden/secret"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("WARDEN_SIGNING_KEY_REF", "secretref:env:WARDEN_TEST_SIGNING_KEY")
	t.Setenv("WARDEN_DIRECTORY_FILE", "/etc/warden/directory.yaml")
}

func TestLoadFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.ListenAddr != ":8080" {
		t.Errorf("ListenAddr = %q, want :8080", cfg.ListenAddr)
	}
	if cfg.TokenValidity != 15*time.Minute {
		t.Errorf("TokenValidity = %v, want 15m", cfg.TokenValidity)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
	if cfg.MetricsExporter != "prometheus" {
		t.Errorf("MetricsExporter = %q, want prometheus", cfg.MetricsExporter)
	}
	if cfg.LoginRateRPS != 5 || cfg.LoginRateBurst != 10 {
		t.Errorf("login rate = %v/%d, want 5/10", cfg.LoginRateRPS, cfg.LoginRateBurst)
	}
	if len(cfg.Warnings) != 0 {
		t.Errorf("Warnings = %v, want none", cfg.Warnings)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WARDEN_LISTEN_ADDR", ":9999")
	t.Setenv("WARDEN_TOKEN_VALIDITY", "30m")
	t.Setenv("WARDEN_DIRECTORY_CACHE_TTL", "10s")
	t.Setenv("WARDEN_LOGIN_RATE_RPS", "2.5")
	t.Setenv("WARDEN_LOGIN_RATE_BURST", "4")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if cfg.ListenAddr != ":9999" {
		t.Errorf("ListenAddr = %q, want :9999", cfg.ListenAddr)
	}
	if cfg.TokenValidity != 30*time.Minute {
		t.Errorf("TokenValidity = %v, want 30m", cfg.TokenValidity)
	}
	if cfg.DirectoryCacheTTL != 10*time.Second {
		t.Errorf("DirectoryCacheTTL = %v, want 10s", cfg.DirectoryCacheTTL)
	}
	if cfg.LoginRateRPS != 2.5 || cfg.LoginRateBurst != 4 {
		t.Errorf("login rate = %v/%d, want 2.5/4", cfg.LoginRateRPS, cfg.LoginRateBurst)
	}
}

func TestLoadFromEnv_LongValidityWarns(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WARDEN_TOKEN_VALIDITY", "2400h")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}
	if len(cfg.Warnings) == 0 {
		t.Fatal("Warnings empty, want long-validity warning")
	}
	if !strings.Contains(cfg.Warnings[0], "24h") {
		t.Errorf("warning = %q, want mention of the 24h threshold", cfg.Warnings[0])
	}
}

func TestLoadFromEnv_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing signing key ref", map[string]string{
			"WARDEN_SIGNING_KEY_REF": "",
			"WARDEN_DIRECTORY_FILE":  "/etc/warden/directory.yaml",
		}},
		{"missing directory file", map[string]string{
			"WARDEN_SIGNING_KEY_REF": "secretref:env:KEY",
			"WARDEN_DIRECTORY_FILE":  "",
		}},
		{"bad validity", map[string]string{
			"WARDEN_SIGNING_KEY_REF": "secretref:env:KEY",
			"WARDEN_DIRECTORY_FILE":  "/etc/warden/directory.yaml",
			"WARDEN_TOKEN_VALIDITY":  "soon",
		}},
		{"zero rate", map[string]string{
			"WARDEN_SIGNING_KEY_REF": "secretref:env:KEY",
			"WARDEN_DIRECTORY_FILE":  "/etc/warden/directory.yaml",
			"WARDEN_LOGIN_RATE_RPS":  "0",
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := LoadFromEnv(); err == nil {
				t.Error("LoadFromEnv() error = nil, want error")
			}
		})
	}
}

func TestConfig_SigningKey(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("WARDEN_TEST_SIGNING_KEY", "key-material")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	resolver := secret.NewResolver(true, secret.EnvProvider{})
	key, err := cfg.SigningKey(context.Background(), resolver)
	if err != nil {
		t.Fatalf("SigningKey() error = %v", err)
	}
	if string(key) != "key-material" {
		t.Errorf("SigningKey() = %q, want resolved key", key)
	}
}
