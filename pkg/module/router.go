package module

import (
	"net/http"
	"strings"
)

// Router dispatches requests to prefixed modules, native routes, and the
// root module, in that order.
type Router struct {
	native  *http.ServeMux
	modules map[string]*Module
	root    *Module
}

func NewRouter() *Router {
	return &Router{
		native:  http.NewServeMux(),
		modules: make(map[string]*Module),
	}
}

// HandleNative registers a handler directly on the router, outside any module.
func (r *Router) HandleNative(pattern string, handler http.HandlerFunc) {
	r.native.HandleFunc(pattern, handler)
}

// Mount attaches a module. Mounting a second module at the same prefix
// replaces the first.
func (r *Router) Mount(m *Module) {
	if m.IsRoot() {
		r.root = m
		return
	}
	r.modules[m.prefix] = m
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	p := req.URL.Path
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimSuffix(p, "/")
		req = withPath(req, p)
	}

	if m, ok := r.modules[firstSegment(p)]; ok {
		m.Serve(w, req)
		return
	}

	if h, pattern := r.native.Handler(req); pattern != "" {
		h.ServeHTTP(w, req)
		return
	}

	if r.root != nil {
		r.root.Serve(w, req)
		return
	}

	http.NotFound(w, req)
}

func firstSegment(p string) string {
	if p == "" || p == "/" {
		return ""
	}
	if i := strings.Index(p[1:], "/"); i >= 0 {
		return p[:i+1]
	}
	return p
}
