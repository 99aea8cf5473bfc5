package web

import "net/http"

// Router wraps http.ServeMux and sends requests that match no registered
// pattern to a fallback handler.
type Router struct {
	mux      *http.ServeMux
	fallback http.Handler
}

// NewRouter creates an empty Router that answers unmatched requests with 404.
func NewRouter() *Router {
	return &Router{
		mux:      http.NewServeMux(),
		fallback: http.NotFoundHandler(),
	}
}

// SetFallback replaces the handler used for unmatched requests.
func (r *Router) SetFallback(h http.Handler) {
	r.fallback = h
}

func (r *Router) Handle(pattern string, h http.Handler) {
	r.mux.Handle(pattern, h)
}

func (r *Router) HandleFunc(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	if _, pattern := r.mux.Handler(req); pattern == "" {
		r.fallback.ServeHTTP(w, req)
		return
	}
	r.mux.ServeHTTP(w, req)
}

// Pattern converts a route into a ServeMux pattern for method. The root
// route matches only "/" rather than every path.
func Pattern(method, route string) string {
	if route == "/" {
		return method + " /{$}"
	}
	return method + " " + route
}
