package main

import (
	"encoding/json"
	"net/http"
	"path"

	"github.com/veridian-labs/regent/internal/api"
	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/internal/infrastructure"
	"github.com/veridian-labs/regent/pkg/middleware"
	"github.com/veridian-labs/regent/pkg/module"
	"github.com/veridian-labs/regent/web/scalar"
)

// Modules groups every mountable surface of the service: the versioned
// compliance API and the Scalar reference UI that renders its OpenAPI
// document.
type Modules struct {
	API    *module.Module
	Scalar *module.Module
}

func NewModules(infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, err := api.NewModule(cfg, infra)
	if err != nil {
		return nil, err
	}

	specURL := path.Join(cfg.API.BasePath, "openapi.json")
	scalarModule := scalar.NewModule("/scalar", specURL)
	scalarModule.Use(middleware.Logger(infra.Logger))

	return &Modules{
		API:    apiModule,
		Scalar: scalarModule,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
	router.Mount(m.Scalar)
}

// buildRouter wires the health endpoints outside any module so they stay
// reachable regardless of API base path or middleware configuration.
func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router
}
