package mw

import (
	"net/http"
	"strings"

	"github.com/mkbkakwk/mynav/internal/logger"
)

// EnforceHost rejects requests whose Host header matches none of the
// allowed patterns. Patterns are exact hosts or "*.example.com"
// wildcards. An empty list disables the check.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost disabled, no hosts configured")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, pattern := range allowedHosts {
				if hostMatches(r.Host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}
			log.Debugf("EnforceHost: rejected host %q", r.Host)
			w.WriteHeader(http.StatusForbidden)
		})
	}
}

func hostMatches(host, pattern string) bool {
	if host == pattern {
		return true
	}
	if rest, ok := strings.CutPrefix(pattern, "*."); ok {
		return strings.HasSuffix(host, "."+rest)
	}
	return false
}
