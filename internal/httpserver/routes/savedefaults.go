package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerSaveDefaults) }

// Only mounted in dev mode: promotes the live dataset back into the
// defaults file.
func registerSaveDefaults(r chi.Router, d deps.Deps) {
	if !d.DevMode {
		return
	}
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Post("/api/save-defaults", handlers.SaveDefaults(d))
}
