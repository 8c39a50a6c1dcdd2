package api

import (
	"github.com/veridian-labs/regent/internal/classifications"
	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/internal/modifications"
	"github.com/veridian-labs/regent/internal/systems"
	"github.com/veridian-labs/regent/internal/tasks"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Systems         systems.System
	Classifications classifications.System
	Tasks           tasks.System
	Modifications   modifications.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(runtime *Runtime, cfg *config.Config) *Domain {
	return &Domain{
		Systems: systems.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
			cfg.API.EvaluateConcurrency,
		),
		Classifications: classifications.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
		Tasks: tasks.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
		Modifications: modifications.New(
			runtime.Database.Connection(),
			runtime.Logger,
			runtime.Pagination,
		),
	}
}
