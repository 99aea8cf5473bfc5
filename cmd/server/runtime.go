package main

import (
	"log/slog"

	"github.com/evsalik/portfolio-web/internal/config"
	"github.com/evsalik/portfolio-web/internal/lifecycle"
	"github.com/evsalik/portfolio-web/pkg/logging"
)

// Runtime holds the process-wide subsystems shared by every module.
type Runtime struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
}

func NewRuntime(cfg *config.Config) *Runtime {
	return &Runtime{
		Lifecycle: lifecycle.New(),
		Logger:    logging.New(&cfg.Logging),
	}
}
