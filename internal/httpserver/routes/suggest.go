package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerSuggest) }

func registerSuggest(r chi.Router, d deps.Deps) {
	r.With(mw.RateLimit(d.RateLimit), mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/suggest", handlers.Suggest(d))
}
