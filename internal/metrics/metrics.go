// Package metrics exposes Prometheus instrumentation for HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/evsalik/portfolio-web/pkg/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// UnmatchedRoute labels requests that no route claimed, keeping label
// cardinality bounded.
const UnmatchedRoute = "unmatched"

var (
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "http_requests_total",
		Help: "Total number of HTTP requests",
	}, []string{"route", "method", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "http_request_duration_seconds",
		Help:    "HTTP request latency",
		Buckets: prometheus.DefBuckets,
	}, []string{"route", "method"})
)

// OtherMethod labels requests whose method is not a standard HTTP method.
const OtherMethod = "OTHER"

var knownMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodHead:    {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodPatch:   {},
	http.MethodDelete:  {},
	http.MethodConnect: {},
	http.MethodOptions: {},
	http.MethodTrace:   {},
}

// Routes maps request paths onto a fixed set of route labels. Paths it
// does not know are labelled UnmatchedRoute whatever the response status.
type Routes struct {
	exact    map[string]struct{}
	prefixes []string
}

func NewRoutes() *Routes {
	return &Routes{exact: make(map[string]struct{})}
}

// Add registers paths that are labelled as themselves.
func (rt *Routes) Add(paths ...string) {
	for _, p := range paths {
		rt.exact[p] = struct{}{}
	}
}

// AddPrefix registers a path prefix such as "/dist/". Every path under it
// shares the label prefix + "*".
func (rt *Routes) AddPrefix(prefix string) {
	rt.prefixes = append(rt.prefixes, prefix)
}

// Label returns the route label for path p. A trailing slash is ignored so
// canonical redirects count under the route they redirect to.
func (rt *Routes) Label(p string) string {
	if rt == nil {
		return UnmatchedRoute
	}
	for _, prefix := range rt.prefixes {
		if strings.HasPrefix(p, prefix) {
			return prefix + "*"
		}
	}
	if len(p) > 1 {
		if trimmed := strings.TrimRight(p, "/"); trimmed != "" {
			p = trimmed
		} else {
			p = "/"
		}
	}
	if _, ok := rt.exact[p]; ok {
		return p
	}
	return UnmatchedRoute
}

func methodLabel(method string) string {
	if _, ok := knownMethods[method]; ok {
		return method
	}
	return OtherMethod
}

// Middleware records request counts and latency labelled through routes.
// Responses with status 404 are always recorded under UnmatchedRoute.
func Middleware(routes *Routes) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rw := middleware.NewStatusRecorder(w)

			next.ServeHTTP(rw, r)

			route := routes.Label(r.URL.Path)
			if rw.Status == http.StatusNotFound {
				route = UnmatchedRoute
			}
			method := methodLabel(r.Method)

			HTTPRequestsTotal.WithLabelValues(route, method, strconv.Itoa(rw.Status)).Inc()
			HTTPRequestDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
		})
	}
}

// Handler serves the default registry in the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.Handler()
}
