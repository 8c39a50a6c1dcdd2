package api

import (
	"net/http"

	"github.com/veridian-labs/regent/internal/config"
	"github.com/veridian-labs/regent/pkg/openapi"
	"github.com/veridian-labs/regent/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
) {
	routes.Register(
		mux,
		domain.Systems.Handler().Routes(),
		domain.Classifications.Handler().Routes(),
		domain.Tasks.Handler().Routes(),
		domain.Modifications.Handler().Routes(),
	)

	if specBytes, err := openapi.MarshalJSON(buildSpec(cfg)); err == nil {
		mux.Handle("GET /openapi.json", openapi.ServeSpec(specBytes))
	}
}
