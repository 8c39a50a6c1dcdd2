package api

import (
	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/internal/infrastructure"
	"github.com/veridian-labs/regent/pkg/pagination"
)

// Runtime is what the domain repositories see: shared infrastructure
// narrowed to an api-scoped logger, plus the pagination bounds every
// list endpoint shares.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
}

func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
		},
		Pagination: cfg.API.Pagination,
	}
}
