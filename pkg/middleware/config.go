package middleware

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// CORSEnv maps environment variable names for CORS configuration.
type CORSEnv struct {
	Enabled          string
	Origins          string
	AllowedMethods   string
	AllowedHeaders   string
	AllowCredentials string
	MaxAge           string
}

// CORSConfig contains Cross-Origin Resource Sharing configuration.
type CORSConfig struct {
	Enabled          bool     `toml:"enabled"`
	Origins          []string `toml:"origins"`
	AllowedMethods   []string `toml:"allowed_methods"`
	AllowedHeaders   []string `toml:"allowed_headers"`
	AllowCredentials bool     `toml:"allow_credentials"`
	MaxAge           int      `toml:"max_age"`
}

// Finalize applies defaults and environment overrides.
func (c *CORSConfig) Finalize(env *CORSEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return nil
}

func (c *CORSConfig) loadDefaults() {
	if len(c.AllowedMethods) == 0 {
		c.AllowedMethods = []string{"GET", "HEAD", "OPTIONS"}
	}
	if len(c.AllowedHeaders) == 0 {
		c.AllowedHeaders = []string{"Content-Type"}
	}
	if c.MaxAge <= 0 {
		c.MaxAge = 3600
	}
}

func (c *CORSConfig) loadEnv(env *CORSEnv) {
	if v := os.Getenv(env.Enabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Enabled = enabled
		}
	}
	if v := os.Getenv(env.Origins); v != "" {
		c.Origins = splitList(v)
	}
	if v := os.Getenv(env.AllowedMethods); v != "" {
		c.AllowedMethods = splitList(v)
	}
	if v := os.Getenv(env.AllowedHeaders); v != "" {
		c.AllowedHeaders = splitList(v)
	}
	if v := os.Getenv(env.AllowCredentials); v != "" {
		if creds, err := strconv.ParseBool(v); err == nil {
			c.AllowCredentials = creds
		}
	}
	if v := os.Getenv(env.MaxAge); v != "" {
		if maxAge, err := strconv.Atoi(v); err == nil {
			c.MaxAge = maxAge
		}
	}
}

// SecureEnv maps environment variable names for security header configuration.
type SecureEnv struct {
	FrameOptions          string
	ReferrerPolicy        string
	ContentSecurityPolicy string
	STSSeconds            string
	TrustProxyHeaders     string
	Development           string
}

// SecureConfig controls the security headers added to every response.
type SecureConfig struct {
	FrameOptions          string `toml:"frame_options"`
	ReferrerPolicy        string `toml:"referrer_policy"`
	ContentSecurityPolicy string `toml:"content_security_policy"`
	STSSeconds            int64  `toml:"sts_seconds"`
	TrustProxyHeaders     bool   `toml:"trust_proxy_headers"`
	Development           bool   `toml:"development"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *SecureConfig) Finalize(env *SecureEnv) error {
	c.loadDefaults()
	if env != nil {
		c.loadEnv(env)
	}
	return c.validate()
}

func (c *SecureConfig) loadDefaults() {
	if c.FrameOptions == "" {
		c.FrameOptions = "DENY"
	}
	if c.ReferrerPolicy == "" {
		c.ReferrerPolicy = "strict-origin-when-cross-origin"
	}
	if c.STSSeconds == 0 {
		c.STSSeconds = 31536000
	}
}

func (c *SecureConfig) loadEnv(env *SecureEnv) {
	if v := os.Getenv(env.FrameOptions); v != "" {
		c.FrameOptions = v
	}
	if v := os.Getenv(env.ReferrerPolicy); v != "" {
		c.ReferrerPolicy = v
	}
	if v := os.Getenv(env.ContentSecurityPolicy); v != "" {
		c.ContentSecurityPolicy = v
	}
	if v := os.Getenv(env.STSSeconds); v != "" {
		if secs, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.STSSeconds = secs
		}
	}
	if v := os.Getenv(env.TrustProxyHeaders); v != "" {
		if trust, err := strconv.ParseBool(v); err == nil {
			c.TrustProxyHeaders = trust
		}
	}
	if v := os.Getenv(env.Development); v != "" {
		if dev, err := strconv.ParseBool(v); err == nil {
			c.Development = dev
		}
	}
}

func (c *SecureConfig) validate() error {
	switch strings.ToUpper(c.FrameOptions) {
	case "DENY", "SAMEORIGIN":
	default:
		return fmt.Errorf("invalid frame_options: %s (must be DENY or SAMEORIGIN)", c.FrameOptions)
	}
	if c.STSSeconds < 0 {
		return fmt.Errorf("sts_seconds must not be negative")
	}
	return nil
}

// RateLimitEnv maps environment variable names for rate limit configuration.
type RateLimitEnv struct {
	Enabled           string
	RequestsPerSecond string
	TrustProxyHeaders string
}

// RateLimitConfig controls per-client request limiting.
type RateLimitConfig struct {
	Enabled           bool    `toml:"enabled"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TrustProxyHeaders bool    `toml:"trust_proxy_headers"`
}

// Finalize applies defaults, loads environment overrides, and validates the configuration.
func (c *RateLimitConfig) Finalize(env *RateLimitEnv) error {
	if c.RequestsPerSecond == 0 {
		c.RequestsPerSecond = 30
	}
	if env != nil {
		if v := os.Getenv(env.Enabled); v != "" {
			if enabled, err := strconv.ParseBool(v); err == nil {
				c.Enabled = enabled
			}
		}
		if v := os.Getenv(env.RequestsPerSecond); v != "" {
			if rps, err := strconv.ParseFloat(v, 64); err == nil {
				c.RequestsPerSecond = rps
			}
		}
		if v := os.Getenv(env.TrustProxyHeaders); v != "" {
			if trust, err := strconv.ParseBool(v); err == nil {
				c.TrustProxyHeaders = trust
			}
		}
	}
	if c.RequestsPerSecond <= 0 {
		return fmt.Errorf("requests_per_second must be positive")
	}
	return nil
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
