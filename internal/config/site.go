package config

import (
	"os"
	"strings"

	"github.com/evsalik/portfolio-web/pkg/web"
)

const (
	EnvSiteTitle    = "SITE_TITLE"
	EnvSiteBasePath = "SITE_BASE_PATH"
	EnvSiteHistory  = "SITE_HISTORY"
)

// SiteConfig contains settings for the rendered site.
type SiteConfig struct {
	Title    string `toml:"title"`
	BasePath string `toml:"base_path"`
	History  string `toml:"history"`
}

// HistoryMode returns the parsed history mode. Call after Finalize.
func (c *SiteConfig) HistoryMode() web.HistoryMode {
	return web.HistoryMode(c.History)
}

// Finalize applies defaults, loads environment overrides, and validates the site configuration.
func (c *SiteConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

func (c *SiteConfig) loadDefaults() {
	if c.Title == "" {
		c.Title = "Portfolio"
	}
	if c.History == "" {
		c.History = string(web.HistoryWeb)
	}
}

func (c *SiteConfig) loadEnv() {
	if v := os.Getenv(EnvSiteTitle); v != "" {
		c.Title = v
	}
	if v := os.Getenv(EnvSiteBasePath); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv(EnvSiteHistory); v != "" {
		c.History = v
	}
}

func (c *SiteConfig) validate() error {
	mode, err := web.ParseHistoryMode(c.History)
	if err != nil {
		return err
	}
	c.History = string(mode)

	c.BasePath = strings.TrimSuffix(c.BasePath, "/")
	if c.BasePath != "" {
		if err := web.ValidateRoute(c.BasePath); err != nil {
			return err
		}
		if strings.Count(c.BasePath, "/") > 1 {
			return web.ErrInvalidBase
		}
	}
	return nil
}
