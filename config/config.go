// Package config handles warden configuration and environment loading.
package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/wardenauth/warden/secret"
)

// Config holds the configuration for the warden server. All values are
// loaded once at startup and read-only thereafter.
type Config struct {
	ListenAddr string // HTTP listen address (default ":8080")

	// SigningKeyRef references the token signing key in external
	// secret configuration, e.g. "secretref:env:WARDEN_SIGNING_KEY"
	// or "secretref:file:/run/secrets/signing-key". The key is never
	// a literal in code or config.
	SigningKeyRef string

	// TokenValidity is the minted token lifetime. The default is
	// deliberately short; override with care for long-lived service
	// integrations.
	TokenValidity time.Duration

	// DirectoryFile is the path to the YAML seed for the principal
	// and resource directories.
	DirectoryFile string

	// DirectoryCacheTTL fronts directory lookups with a short-lived
	// cache when > 0. Zero disables caching.
	DirectoryCacheTTL time.Duration

	// Login rate limiting
	LoginRateRPS   float64 // sustained login attempts per second per client (default 5)
	LoginRateBurst int     // burst capacity (default 10)

	LogLevel string // log level: debug, info, warn, error (default "info")

	// Telemetry
	MetricsExporter  string  // otlp|prometheus|stdout|none (default "prometheus")
	TracingExporter  string  // otlp|stdout|none (default "none")
	TracingSamplePct float64 // 0.0-1.0 (default 1.0)

	// Warnings collects non-fatal warnings generated during config
	// loading. These are logged by the caller after the logger is
	// initialised.
	Warnings []string
}

// LoadFromEnv loads configuration from environment variables.
func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		ListenAddr:       os.Getenv("WARDEN_LISTEN_ADDR"),
		SigningKeyRef:    os.Getenv("WARDEN_SIGNING_KEY_REF"),
		DirectoryFile:    os.Getenv("WARDEN_DIRECTORY_FILE"),
		LogLevel:         os.Getenv("WARDEN_LOG_LEVEL"),
		MetricsExporter:  os.Getenv("WARDEN_METRICS_EXPORTER"),
		TracingExporter:  os.Getenv("WARDEN_TRACING_EXPORTER"),
		TracingSamplePct: 1.0,
		TokenValidity:    15 * time.Minute,
		LoginRateRPS:     5,
		LoginRateBurst:   10,
	}

	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.MetricsExporter == "" {
		cfg.MetricsExporter = "prometheus"
	}
	if cfg.TracingExporter == "" {
		cfg.TracingExporter = "none"
	}

	if v := os.Getenv("WARDEN_TOKEN_VALIDITY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WARDEN_TOKEN_VALIDITY %q: %w", v, err)
		}
		cfg.TokenValidity = d
	}
	if cfg.TokenValidity > 24*time.Hour {
		cfg.Warnings = append(cfg.Warnings, fmt.Sprintf(
			"token validity %s exceeds 24h; long-lived bearer tokens without refresh are a risk", cfg.TokenValidity))
	}

	if v := os.Getenv("WARDEN_DIRECTORY_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WARDEN_DIRECTORY_CACHE_TTL %q: %w", v, err)
		}
		cfg.DirectoryCacheTTL = d
	}

	if v := os.Getenv("WARDEN_LOGIN_RATE_RPS"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WARDEN_LOGIN_RATE_RPS %q: %w", v, err)
		}
		cfg.LoginRateRPS = f
	}
	if v := os.Getenv("WARDEN_LOGIN_RATE_BURST"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid WARDEN_LOGIN_RATE_BURST %q: %w", v, err)
		}
		cfg.LoginRateBurst = n
	}

	if v := os.Getenv("WARDEN_TRACING_SAMPLE_PCT"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid WARDEN_TRACING_SAMPLE_PCT %q: %w", v, err)
		}
		cfg.TracingSamplePct = f
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is internally consistent.
func (c *Config) Validate() error {
	if c.SigningKeyRef == "" {
		return fmt.Errorf("WARDEN_SIGNING_KEY_REF is required")
	}
	if c.DirectoryFile == "" {
		return fmt.Errorf("WARDEN_DIRECTORY_FILE is required")
	}
	if c.TokenValidity <= 0 {
		return fmt.Errorf("token validity must be positive")
	}
	if c.LoginRateRPS <= 0 {
		return fmt.Errorf("login rate limit must be positive")
	}
	if c.LoginRateBurst <= 0 {
		return fmt.Errorf("login rate burst must be positive")
	}
	return nil
}

// SigningKey resolves the signing key reference through the secret
// resolver. Called once at startup; the key is immutable afterwards.
func (c *Config) SigningKey(ctx context.Context, resolver *secret.Resolver) ([]byte, error) {
	return resolver.ResolveKey(ctx, c.SigningKeyRef)
}
