package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerDataset) }

func registerDataset(r chi.Router, d deps.Deps) {
	r.With(mw.EnforceHost(d.AllowedHosts, d.Logger)).Get("/api/dataset", handlers.Dataset(d))
}
