package main

import (
	"time"

	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/internal/infrastructure"
)

// Server assembles the full service: shared infrastructure (database,
// logger, lifecycle coordinator), the mounted modules, and the HTTP
// listener in front of them.
type Server struct {
	infra    *infrastructure.Infrastructure
	modules  *Modules
	listener *listener
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra, cfg)
	if err != nil {
		return nil, err
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"env", cfg.Env(),
	)

	return &Server{
		infra:    infra,
		modules:  modules,
		listener: newListener(&cfg.Server, router, infra.Logger),
	}, nil
}

// Start brings up infrastructure first, then the listener, so the first
// request never races the database pool.
func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}
	if err := s.listener.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	go func() {
		s.infra.Lifecycle.WaitForStartup()
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
