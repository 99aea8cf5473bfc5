// Package config provides application configuration management with support for
// TOML files, environment variable overrides, and configuration overlays.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/evsalik/portfolio-web/pkg/logging"
	"github.com/evsalik/portfolio-web/pkg/middleware"
	"github.com/pelletier/go-toml/v2"
)

const (
	// BaseConfigFile is the primary configuration file name.
	BaseConfigFile = "config.toml"

	// OverlayConfigPattern is the file name pattern for environment-specific overlays.
	OverlayConfigPattern = "config.%s.toml"

	// EnvServiceEnv specifies the environment name for configuration overlays.
	EnvServiceEnv = "SERVICE_ENV"

	// EnvServiceShutdownTimeout overrides the service shutdown timeout.
	EnvServiceShutdownTimeout = "SERVICE_SHUTDOWN_TIMEOUT"

	// EnvServiceVersion overrides the reported service version.
	EnvServiceVersion = "SERVICE_VERSION"
)

var loggingEnv = &logging.Env{
	Level:  "LOG_LEVEL",
	Format: "LOG_FORMAT",
}

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CORS_ENABLED",
	Origins:          "CORS_ORIGINS",
	AllowedMethods:   "CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CORS_ALLOWED_HEADERS",
	AllowCredentials: "CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CORS_MAX_AGE",
}

var secureEnv = &middleware.SecureEnv{
	FrameOptions:          "SECURITY_FRAME_OPTIONS",
	ReferrerPolicy:        "SECURITY_REFERRER_POLICY",
	ContentSecurityPolicy: "SECURITY_CONTENT_SECURITY_POLICY",
	STSSeconds:            "SECURITY_STS_SECONDS",
	TrustProxyHeaders:     "SECURITY_TRUST_PROXY_HEADERS",
	Development:           "SECURITY_DEVELOPMENT",
}

var rateLimitEnv = &middleware.RateLimitEnv{
	Enabled:           "RATE_LIMIT_ENABLED",
	RequestsPerSecond: "RATE_LIMIT_REQUESTS_PER_SECOND",
	TrustProxyHeaders: "RATE_LIMIT_TRUST_PROXY_HEADERS",
}

// Config represents the root service configuration.
type Config struct {
	Version         string                     `toml:"version"`
	ShutdownTimeout string                     `toml:"shutdown_timeout"`
	Server          ServerConfig               `toml:"server"`
	Logging         logging.Config             `toml:"logging"`
	Site            SiteConfig                 `toml:"site"`
	Metrics         MetricsConfig              `toml:"metrics"`
	CORS            middleware.CORSConfig      `toml:"cors"`
	Security        middleware.SecureConfig    `toml:"security"`
	RateLimit       middleware.RateLimitConfig `toml:"rate_limit"`
}

// Env returns the configured service environment name, defaulting to "local".
func (c *Config) Env() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		return env
	}
	return "local"
}

// ShutdownTimeoutDuration parses and returns the shutdown timeout as a time.Duration.
func (c *Config) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.ShutdownTimeout)
	return d
}

// Load reads the base configuration file, applies any environment-specific
// overlay, and finalizes the result. A missing base file yields defaults.
// The overlay is decoded onto the base, so keys it omits keep their base
// values, booleans included.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := decodeFile(BaseConfigFile, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	if path := overlayPath(); path != "" {
		if err := decodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("load overlay %s: %w", path, err)
		}
	}

	if err := cfg.Finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *Config) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if err := c.validate(); err != nil {
		return err
	}
	if err := c.Server.Finalize(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	if err := c.Logging.Finalize(loggingEnv); err != nil {
		return fmt.Errorf("logging: %w", err)
	}
	if err := c.Site.Finalize(); err != nil {
		return fmt.Errorf("site: %w", err)
	}
	if err := c.Metrics.Finalize(); err != nil {
		return fmt.Errorf("metrics: %w", err)
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Security.Finalize(secureEnv); err != nil {
		return fmt.Errorf("security: %w", err)
	}
	if err := c.RateLimit.Finalize(rateLimitEnv); err != nil {
		return fmt.Errorf("rate_limit: %w", err)
	}
	return nil
}

func (c *Config) loadDefaults() {
	if c.ShutdownTimeout == "" {
		c.ShutdownTimeout = "30s"
	}
	if c.Version == "" {
		c.Version = "dev"
	}
}

func (c *Config) loadEnv() {
	if v := os.Getenv(EnvServiceShutdownTimeout); v != "" {
		c.ShutdownTimeout = v
	}
	if v := os.Getenv(EnvServiceVersion); v != "" {
		c.Version = v
	}
}

func (c *Config) validate() error {
	d, err := time.ParseDuration(c.ShutdownTimeout)
	if err != nil {
		return fmt.Errorf("invalid shutdown_timeout: %w", err)
	}
	if d <= 0 {
		return fmt.Errorf("shutdown_timeout must be positive")
	}
	return nil
}

func decodeFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	return nil
}

func overlayPath() string {
	if env := os.Getenv(EnvServiceEnv); env != "" {
		overlayPath := fmt.Sprintf(OverlayConfigPattern, env)
		if _, err := os.Stat(overlayPath); err == nil {
			return overlayPath
		}
	}
	return ""
}
