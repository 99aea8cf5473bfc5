package middleware

import (
	"net/http"

	"github.com/didip/tollbooth/v8"
	"github.com/didip/tollbooth/v8/limiter"
)

// RateLimit returns middleware that limits each client to the configured
// request rate. Clients are keyed by remote address, or by X-Forwarded-For
// when proxy headers are trusted. It is a pass-through when disabled.
func RateLimit(cfg *RateLimitConfig) func(http.Handler) http.Handler {
	if !cfg.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	lmt := tollbooth.NewLimiter(cfg.RequestsPerSecond, nil)
	if cfg.TrustProxyHeaders {
		lmt.SetIPLookup(limiter.IPLookup{Name: "X-Forwarded-For", IndexFromRight: 0})
	} else {
		lmt.SetIPLookup(limiter.IPLookup{Name: "RemoteAddr", IndexFromRight: 0})
	}

	return func(next http.Handler) http.Handler {
		return tollbooth.LimitHandler(lmt, next)
	}
}
