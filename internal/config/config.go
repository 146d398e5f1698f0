// Package config provides layered configuration loading and validation.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment variable read by Load.
	EnvPrefix = "RESUME_ANALYZER_"
	// EnvConfigFile names an optional YAML config file.
	EnvConfigFile = "RESUME_ANALYZER_CONFIG"
)

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("config error")

// Config holds process configuration.
type Config struct {
	// HTTP
	Addr         string `koanf:"addr"`
	MaxUploadMB  int    `koanf:"max_upload_mb"`
	CookieSecure bool   `koanf:"cookie_secure"`

	// Storage
	DatabaseURL string `koanf:"database_url"`

	// Logging
	LogJSON bool `koanf:"log_json"`
	Debug   bool `koanf:"debug"`

	// Sessions and passwords
	SessionSecret   string `koanf:"session_secret"`
	SessionTTLHours int    `koanf:"session_ttl_hours"`
	BcryptCost      int    `koanf:"bcrypt_cost"`
	PasswordPepper  string `koanf:"password_pepper"`

	// Matching
	SkillsFile string `koanf:"skills_file"`

	// Job posting import; the URL field is hidden and ignored when disabled
	JobPostEnabled    bool          `koanf:"jobpost_enabled"`
	JobPostUseBrowser bool          `koanf:"jobpost_use_browser"`
	JobPostTimeout    time.Duration `koanf:"jobpost_timeout"`

	// Optional S3-compatible upload archive; disabled when S3Bucket is empty
	S3Bucket    string `koanf:"s3_bucket"`
	S3Endpoint  string `koanf:"s3_endpoint"`
	S3Region    string `koanf:"s3_region"`
	S3AccessKey string `koanf:"s3_access_key"`
	S3SecretKey string `koanf:"s3_secret_key"`

	// Rate limiting
	RateLimitEnabled       bool          `koanf:"rate_limit_enabled"`
	RateLimitDefaultLimit  int           `koanf:"rate_limit_default_limit"`
	RateLimitDefaultWindow time.Duration `koanf:"rate_limit_default_window"`
	RateLimitWhitelist     []string      `koanf:"rate_limit_whitelist"`
}

// Default returns the configuration used when nothing else is set.
func Default() *Config {
	return &Config{
		Addr:                   ":8080",
		MaxUploadMB:            10,
		SessionTTLHours:        24,
		BcryptCost:             12,
		JobPostEnabled:         true,
		JobPostTimeout:         30 * time.Second,
		S3Region:               "auto",
		RateLimitEnabled:       true,
		RateLimitDefaultLimit:  1000,
		RateLimitDefaultWindow: time.Minute,
	}
}

// Load builds a Config by layering defaults, an optional YAML file and environment variables.
// Order of precedence (low -> high):
//  1. Default()
//  2. YAML file at path, or at $RESUME_ANALYZER_CONFIG when path is empty
//  3. env (prefix RESUME_ANALYZER_)
//
// Command-line flags are applied on top by the caller.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path == "" {
		path = os.Getenv(EnvConfigFile)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	// RESUME_ANALYZER_SESSION_TTL_HOURS -> session_ttl_hours
	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	// comma-separated lists arrive from env as a single string
	cfg.RateLimitWhitelist = splitCSV(cfg.RateLimitWhitelist)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks value ranges. Values that only some commands need are checked by RequireServer.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: 'addr' must not be empty", ErrInvalidConfig)
	}
	if c.MaxUploadMB < 1 {
		return fmt.Errorf("%w: 'max_upload_mb' must be at least 1, got %d", ErrInvalidConfig, c.MaxUploadMB)
	}
	if c.SessionTTLHours < 1 {
		return fmt.Errorf("%w: 'session_ttl_hours' must be at least 1, got %d", ErrInvalidConfig, c.SessionTTLHours)
	}
	if c.BcryptCost < minBcryptCost || c.BcryptCost > maxBcryptCost {
		return fmt.Errorf("%w: 'bcrypt_cost' out of range: %d (must be %d-%d)", ErrInvalidConfig, c.BcryptCost, minBcryptCost, maxBcryptCost)
	}
	if c.JobPostTimeout <= 0 {
		return fmt.Errorf("%w: 'jobpost_timeout' must be positive", ErrInvalidConfig)
	}
	if c.RateLimitEnabled {
		if c.RateLimitDefaultLimit < 1 {
			return fmt.Errorf("%w: 'rate_limit_default_limit' must be at least 1", ErrInvalidConfig)
		}
		if c.RateLimitDefaultWindow <= 0 {
			return fmt.Errorf("%w: 'rate_limit_default_window' must be positive", ErrInvalidConfig)
		}
	}
	if c.S3Bucket != "" && (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return fmt.Errorf("%w: 's3_access_key' and 's3_secret_key' must be set together", ErrInvalidConfig)
	}
	return nil
}

// RequireDatabase checks that a database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("%w: 'database_url' is required (set %sDATABASE_URL)", ErrInvalidConfig, EnvPrefix)
	}
	return nil
}

// RequireServer checks the values the HTTP server cannot start without.
func (c *Config) RequireServer() error {
	if err := c.RequireDatabase(); err != nil {
		return err
	}
	if c.SessionSecret == "" {
		return fmt.Errorf("%w: 'session_secret' is required (set %sSESSION_SECRET)", ErrInvalidConfig, EnvPrefix)
	}
	return nil
}

// MaxUploadBytes returns the upload limit in bytes.
func (c *Config) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}

// ArchiveEnabled reports whether uploads should be archived to object storage.
func (c *Config) ArchiveEnabled() bool {
	return c.S3Bucket != ""
}

func splitCSV(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}
