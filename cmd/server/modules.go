package main

import (
	"net/http"

	"github.com/evsalik/portfolio-web/internal/config"
	"github.com/evsalik/portfolio-web/internal/metrics"
	"github.com/evsalik/portfolio-web/pkg/module"
	"github.com/evsalik/portfolio-web/web/app"
)

type Modules struct {
	App *module.Module
}

func NewModules(runtime *Runtime, cfg *config.Config) (*Modules, error) {
	appModule, err := app.NewModule(app.Options{
		SiteTitle: cfg.Site.Title,
		BasePath:  cfg.Site.BasePath,
		History:   cfg.Site.HistoryMode(),
	})
	if err != nil {
		return nil, err
	}

	runtime.Logger.Info(
		"app module configured",
		"prefix", appModule.Prefix(),
		"history", cfg.Site.HistoryMode(),
	)

	return &Modules{
		App: appModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.App)
}

func buildRouter(runtime *Runtime, cfg *config.Config) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		if !runtime.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte("NOT READY"))
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("READY"))
	})

	if cfg.Metrics.Enabled {
		metricsHandler := metrics.Handler()
		router.HandleNative("GET "+cfg.Metrics.Path, metricsHandler.ServeHTTP)
	}

	return router
}
