package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/veridian-labs/regent/internal/config"
)

// setDatabaseEnv supplies the required database identity, which has no
// default and would otherwise fail validation.
func setDatabaseEnv(t *testing.T) {
	t.Helper()
	t.Setenv("REGENT_DB_NAME", "regent")
	t.Setenv("REGENT_DB_USER", "regent")
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	setDatabaseEnv(t)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Addr() != "0.0.0.0:8080" {
		t.Errorf("Addr() = %q, want %q", cfg.Server.Addr(), "0.0.0.0:8080")
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
	if cfg.Version != "0.1.0" {
		t.Errorf("Version = %q, want %q", cfg.Version, "0.1.0")
	}
	if cfg.Database.Host != "localhost" {
		t.Errorf("Database.Host = %q, want %q", cfg.Database.Host, "localhost")
	}
	if cfg.API.BasePath != "/api" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/api")
	}
	if cfg.API.EvaluateConcurrency != 4 {
		t.Errorf("API.EvaluateConcurrency = %d, want 4", cfg.API.EvaluateConcurrency)
	}
	if cfg.API.Pagination.DefaultPageSize == 0 {
		t.Error("API.Pagination.DefaultPageSize not defaulted")
	}
}

func TestLoadBaseFile(t *testing.T) {
	setDatabaseEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
version = "1.2.3"

[server]
port = 9090

[api]
base_path = "/regent"
evaluate_concurrency = 8
`)
	t.Chdir(dir)

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Version != "1.2.3" {
		t.Errorf("Version = %q, want %q", cfg.Version, "1.2.3")
	}
	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.API.BasePath != "/regent" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/regent")
	}
	if cfg.API.EvaluateConcurrency != 8 {
		t.Errorf("API.EvaluateConcurrency = %d, want 8", cfg.API.EvaluateConcurrency)
	}
}

func TestLoadOverlay(t *testing.T) {
	setDatabaseEnv(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "config.toml"), `
[server]
host = "127.0.0.1"
port = 9090
`)
	writeFile(t, filepath.Join(dir, "config.staging.toml"), `
[server]
port = 9191
`)
	t.Chdir(dir)
	t.Setenv(config.EnvRegentEnv, "staging")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9191 {
		t.Errorf("Server.Port = %d, overlay should win, want 9191", cfg.Server.Port)
	}
	if cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server.Host = %q, base should survive, want %q", cfg.Server.Host, "127.0.0.1")
	}
	if cfg.Env() != "staging" {
		t.Errorf("Env() = %q, want %q", cfg.Env(), "staging")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	setDatabaseEnv(t)
	t.Chdir(t.TempDir())
	t.Setenv(config.EnvServerPort, "7070")
	t.Setenv(config.EnvRegentShutdownTimeout, "45s")
	t.Setenv("REGENT_API_BASE_PATH", "/v2")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 7070 {
		t.Errorf("Server.Port = %d, want 7070", cfg.Server.Port)
	}
	if cfg.ShutdownTimeout != "45s" {
		t.Errorf("ShutdownTimeout = %q, want %q", cfg.ShutdownTimeout, "45s")
	}
	if cfg.API.BasePath != "/v2" {
		t.Errorf("API.BasePath = %q, want %q", cfg.API.BasePath, "/v2")
	}
}

func TestLoadInvalid(t *testing.T) {
	setDatabaseEnv(t)
	tests := []struct {
		name    string
		content string
	}{
		{"bad port", "[server]\nport = 70000\n"},
		{"bad timeout", `shutdown_timeout = "forever"` + "\n"},
		{"bad concurrency", "[api]\nevaluate_concurrency = -1\n"},
		{"malformed toml", "[server\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, filepath.Join(dir, "config.toml"), tt.content)
			t.Chdir(dir)

			if _, err := config.Load(); err == nil {
				t.Error("Load() error = nil, want error")
			}
		})
	}
}

func TestServerConfigDurations(t *testing.T) {
	cfg := config.ServerConfig{}
	if err := cfg.Finalize(); err != nil {
		t.Fatalf("Finalize() error = %v", err)
	}

	if cfg.ReadTimeoutDuration() != time.Minute {
		t.Errorf("ReadTimeoutDuration() = %v, want 1m", cfg.ReadTimeoutDuration())
	}
	if cfg.WriteTimeoutDuration() != 2*time.Minute {
		t.Errorf("WriteTimeoutDuration() = %v, want 2m", cfg.WriteTimeoutDuration())
	}
	if cfg.ShutdownTimeoutDuration() != 30*time.Second {
		t.Errorf("ShutdownTimeoutDuration() = %v, want 30s", cfg.ShutdownTimeoutDuration())
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}
