// Package module mounts self-contained HTTP handlers under URL prefixes.
//
// A Module owns a handler and its middleware. The root module (prefix "/")
// receives every request that no prefixed module or native route claims.
package module

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// Module is an HTTP handler mounted under a prefix with its own middleware.
type Module struct {
	prefix     string
	handler    http.Handler
	middleware []func(http.Handler) http.Handler
}

// New creates a module. The prefix must be "/" or a single path segment
// such as "/ops"; New panics otherwise since prefixes are static wiring.
func New(prefix string, handler http.Handler) *Module {
	if err := validatePrefix(prefix); err != nil {
		panic(err)
	}
	return &Module{
		prefix:  prefix,
		handler: handler,
	}
}

// Prefix returns the module's mount prefix.
func (m *Module) Prefix() string {
	return m.prefix
}

// IsRoot reports whether the module is mounted at the site root.
func (m *Module) IsRoot() bool {
	return m.prefix == "/"
}

// Use appends middleware. The first middleware added is the outermost.
func (m *Module) Use(mw func(http.Handler) http.Handler) {
	m.middleware = append(m.middleware, mw)
}

// Handler returns the module handler wrapped in its middleware.
func (m *Module) Handler() http.Handler {
	h := m.handler
	for i := len(m.middleware) - 1; i >= 0; i-- {
		h = m.middleware[i](h)
	}
	return h
}

// Serve strips the module prefix from the request path and dispatches it.
func (m *Module) Serve(w http.ResponseWriter, r *http.Request) {
	if m.IsRoot() {
		m.Handler().ServeHTTP(w, r)
		return
	}

	p := strings.TrimPrefix(r.URL.Path, m.prefix)
	if p == "" {
		p = "/"
	}
	m.Handler().ServeHTTP(w, withPath(r, p))
}

func validatePrefix(prefix string) error {
	if prefix == "/" {
		return nil
	}
	if prefix == "" || prefix[0] != '/' {
		return fmt.Errorf("module prefix %q must start with /", prefix)
	}
	if strings.Contains(prefix[1:], "/") {
		return fmt.Errorf("module prefix %q must be a single path segment", prefix)
	}
	return nil
}

func withPath(r *http.Request, p string) *http.Request {
	r2 := new(http.Request)
	*r2 = *r
	r2.URL = new(url.URL)
	*r2.URL = *r.URL
	r2.URL.Path = p
	r2.URL.RawPath = ""
	return r2
}
