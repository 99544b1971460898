package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerResolve) }

func registerResolve(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(d.RateLimit), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/resolve", handlers.Resolve(d))
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/icon-chain", handlers.IconChain(d))
}
