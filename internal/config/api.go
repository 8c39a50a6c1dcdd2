package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/veridian-labs/regent/pkg/middleware"
	"github.com/veridian-labs/regent/pkg/openapi"
	"github.com/veridian-labs/regent/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "REGENT_CORS_ENABLED",
	Origins:          "REGENT_CORS_ORIGINS",
	AllowedMethods:   "REGENT_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "REGENT_CORS_ALLOWED_HEADERS",
	AllowCredentials: "REGENT_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "REGENT_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "REGENT_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "REGENT_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "REGENT_OPENAPI_TITLE",
	Description: "REGENT_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and evaluation settings.
type APIConfig struct {
	BasePath string `toml:"base_path"`
	// EvaluateConcurrency bounds the worker count for bulk re-evaluation.
	EvaluateConcurrency int                   `toml:"evaluate_concurrency"`
	CORS                middleware.CORSConfig `toml:"cors"`
	Pagination          pagination.Config     `toml:"pagination"`
	OpenAPI             openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if c.EvaluateConcurrency < 1 {
		return fmt.Errorf("evaluate_concurrency must be positive")
	}
	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}
	if overlay.EvaluateConcurrency != 0 {
		c.EvaluateConcurrency = overlay.EvaluateConcurrency
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
	if c.EvaluateConcurrency == 0 {
		c.EvaluateConcurrency = 4
	}
}

func (c *APIConfig) loadEnv() {
	if v := os.Getenv("REGENT_API_BASE_PATH"); v != "" {
		c.BasePath = v
	}
	if v := os.Getenv("REGENT_API_EVALUATE_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.EvaluateConcurrency = n
		}
	}
}
