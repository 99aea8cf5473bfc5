package middleware

import (
	"net/http"
	"strings"

	"github.com/unrolled/secure"
)

// Secure returns middleware that adds security headers to every response.
// In development mode HSTS is not sent.
func Secure(cfg *SecureConfig) func(http.Handler) http.Handler {
	sslProxyHeaders := map[string]string{}
	if cfg.TrustProxyHeaders {
		sslProxyHeaders["X-Forwarded-Proto"] = "https"
	}

	s := secure.New(secure.Options{
		STSSeconds:              cfg.STSSeconds,
		STSIncludeSubdomains:    true,
		CustomFrameOptionsValue: strings.ToUpper(cfg.FrameOptions),
		ContentTypeNosniff:      true,
		ReferrerPolicy:          cfg.ReferrerPolicy,
		ContentSecurityPolicy:   cfg.ContentSecurityPolicy,
		IsDevelopment:           cfg.Development,
		SSLProxyHeaders:         sslProxyHeaders,
	})

	return s.Handler
}
