package main

import (
	"github.com/evsalik/portfolio-web/internal/config"
	"github.com/evsalik/portfolio-web/internal/metrics"
	"github.com/evsalik/portfolio-web/pkg/middleware"
	"github.com/evsalik/portfolio-web/web/app"
)

// buildMiddleware creates the server-wide middleware stack. The logger is
// outermost so rejected and redirected requests are still logged.
func buildMiddleware(runtime *Runtime, cfg *config.Config, routes *metrics.Routes) middleware.System {
	middlewareSys := middleware.New()
	middlewareSys.Use(middleware.Logger(runtime.Logger))
	middlewareSys.Use(middleware.Secure(&cfg.Security))
	middlewareSys.Use(middleware.RateLimit(&cfg.RateLimit))
	middlewareSys.Use(metrics.Middleware(routes))
	middlewareSys.Use(middleware.TrimSlash())
	middlewareSys.Use(middleware.CORS(&cfg.CORS))
	return middlewareSys
}

// metricsRoutes lists every path the server answers so metric labels stay
// within that set.
func metricsRoutes(cfg *config.Config) (*metrics.Routes, error) {
	table, err := app.NewRoutes(cfg.Site.HistoryMode(), cfg.Site.BasePath)
	if err != nil {
		return nil, err
	}
	base := table.BasePath()

	routes := metrics.NewRoutes()
	for _, v := range table.Views() {
		if v.Route == "/" && base != "" {
			routes.Add(base)
			continue
		}
		routes.Add(base + v.Route)
	}
	for _, name := range app.PublicFiles() {
		routes.Add(base + "/" + name)
	}
	routes.AddPrefix(base + "/dist/")

	routes.Add("/healthz", "/readyz")
	if cfg.Metrics.Enabled {
		routes.Add(cfg.Metrics.Path)
	}
	return routes, nil
}
