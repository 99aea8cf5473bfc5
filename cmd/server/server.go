package main

import (
	"net/http"
	"time"

	"github.com/evsalik/portfolio-web/internal/config"
	"github.com/evsalik/portfolio-web/internal/server"
)

// Server coordinates the lifecycle of all subsystems.
type Server struct {
	runtime *Runtime
	modules *Modules
	handler http.Handler
	http    server.System
}

// NewServer creates and initializes the service with all subsystems.
func NewServer(cfg *config.Config) (*Server, error) {
	runtime := NewRuntime(cfg)

	modules, err := NewModules(runtime, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(runtime, cfg)
	modules.Mount(router)

	routes, err := metricsRoutes(cfg)
	if err != nil {
		return nil, err
	}
	handler := buildMiddleware(runtime, cfg, routes).Apply(router)

	runtime.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
	)

	return &Server{
		runtime: runtime,
		modules: modules,
		handler: handler,
		http:    server.New(&cfg.Server, handler, runtime.Logger),
	}, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.handler
}

// Start begins all subsystems and returns once the listener is bound.
func (s *Server) Start() error {
	s.runtime.Logger.Info("starting service")

	if err := s.http.Start(s.runtime.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.runtime.Lifecycle.WaitForStartup()
		s.runtime.Logger.Info("all subsystems ready", "addr", s.http.Addr())
	}()

	return nil
}

// Err delivers an error if the HTTP server stops serving on its own.
func (s *Server) Err() <-chan error {
	return s.http.Err()
}

// Shutdown gracefully stops all subsystems within the timeout.
func (s *Server) Shutdown(timeout time.Duration) error {
	s.runtime.Logger.Info("initiating shutdown")
	return s.runtime.Lifecycle.Shutdown(timeout)
}
