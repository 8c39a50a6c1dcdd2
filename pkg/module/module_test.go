package module_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/veridian-labs/regent/pkg/module"
)

func echoPath() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(r.URL.Path))
	})
}

func TestNewValidatesPrefix(t *testing.T) {
	tests := []struct {
		name   string
		prefix string
		panics bool
	}{
		{"valid single-level", "/api", false},
		{"empty", "", true},
		{"missing leading slash", "api", true},
		{"multi-level", "/api/v1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				recovered := recover()
				if tt.panics && recovered == nil {
					t.Error("expected panic, got none")
				}
				if !tt.panics && recovered != nil {
					t.Errorf("unexpected panic: %v", recovered)
				}
			}()
			module.New(tt.prefix, echoPath())
		})
	}
}

func TestModuleStripsPrefix(t *testing.T) {
	m := module.New("/api", echoPath())

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"subpath", "/api/systems", "/systems"},
		{"prefix only", "/api", "/"},
		{"deep path", "/api/systems/abc/evaluate", "/systems/abc/evaluate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			m.Serve(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Body.String() != tt.want {
				t.Errorf("inner path = %q, want %q", rec.Body.String(), tt.want)
			}
		})
	}
}

func TestModuleServeDoesNotMutateRequest(t *testing.T) {
	m := module.New("/api", echoPath())
	req := httptest.NewRequest(http.MethodGet, "/api/systems", nil)

	m.Serve(httptest.NewRecorder(), req)

	if req.URL.Path != "/api/systems" {
		t.Errorf("original request path = %q, want %q", req.URL.Path, "/api/systems")
	}
}

func TestModuleMiddlewareOrder(t *testing.T) {
	var order []string
	mw := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	m := module.New("/api", echoPath())
	m.Use(mw("first"))
	m.Use(mw("second"))

	m.Serve(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/x", nil))

	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("middleware order = %v, want [first second]", order)
	}
}

func TestRouterDispatch(t *testing.T) {
	router := module.NewRouter()
	router.Mount(module.New("/api", echoPath()))
	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})

	tests := []struct {
		name   string
		target string
		status int
		body   string
	}{
		{"module path", "/api/systems", http.StatusOK, "/systems"},
		{"module root", "/api", http.StatusOK, "/"},
		{"trailing slash normalized", "/api/", http.StatusOK, "/"},
		{"native route", "/healthz", http.StatusOK, "ok"},
		{"unmatched", "/nope", http.StatusNotFound, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.target, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			if tt.body != "" && rec.Body.String() != tt.body {
				t.Errorf("body = %q, want %q", rec.Body.String(), tt.body)
			}
		})
	}
}

func TestModulePrefix(t *testing.T) {
	m := module.New("/scalar", echoPath())
	if m.Prefix() != "/scalar" {
		t.Errorf("Prefix() = %q, want %q", m.Prefix(), "/scalar")
	}
}
