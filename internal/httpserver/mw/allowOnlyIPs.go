package mw

import (
	"net/http"

	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/utils"
)

// AllowOnlyCIDRS restricts a route to callers whose IP falls inside the
// configured list of IPs/CIDRs. An empty list disables the check.
// Guards the mutating and ops routes so a start page exposed to the
// internet still only accepts edits from trusted networks.
func AllowOnlyCIDRS(allowed []string, trustProxy bool, log logger.Logger) func(http.Handler) http.Handler {
	m := utils.NewIPMatcher(allowed)
	if m.IsEmpty() {
		log.Debug("AllowOnlyCIDRS disabled, no rules configured")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, trustProxy)
			if !m.Allow(ip) {
				log.Debugf("AllowOnlyCIDRS: rejected %s (RemoteAddr=%s)", ip, r.RemoteAddr)
				w.WriteHeader(http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
