package module

import (
	"net/http"
	"strings"
)

// Router fans requests out to mounted modules keyed by their first path
// segment. Anything that does not land on a module goes to a plain
// ServeMux, which is where health endpoints and other one-off routes
// live.
type Router struct {
	byPrefix map[string]*Module
	fallback *http.ServeMux
}

func NewRouter() *Router {
	return &Router{
		byPrefix: make(map[string]*Module),
		fallback: http.NewServeMux(),
	}
}

// Mount attaches a module under its configured prefix. Mounting a second
// module with the same prefix replaces the first.
func (r *Router) Mount(m *Module) {
	r.byPrefix[m.prefix] = m
}

// HandleNative registers a pattern directly on the fallback mux.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.fallback.HandleFunc(pattern, handler)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	// Strip a single trailing slash so /api/ and /api resolve the same
	// module. The root path stays untouched.
	if p := req.URL.Path; len(p) > 1 && strings.HasSuffix(p, "/") {
		req.URL.Path = strings.TrimSuffix(p, "/")
	}

	if m, ok := r.byPrefix[firstSegment(req.URL.Path)]; ok {
		m.Serve(w, req)
		return
	}
	r.fallback.ServeHTTP(w, req)
}

// firstSegment reduces a path to its leading segment, "/systems/42"
// becoming "/systems".
func firstSegment(path string) string {
	rest := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return "/" + rest
}
