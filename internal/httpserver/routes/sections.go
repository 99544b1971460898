package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerSections) }

func registerSections(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/sections", func(r chi.Router) {
		r.Post("/", handlers.AddSection(d))
		r.Post("/reorder", handlers.ReorderSections(d))
		r.Put("/{sectionID}", handlers.UpdateSection(d))
		r.Delete("/{sectionID}", handlers.DeleteSection(d))
		r.Post("/{sectionID}/items", handlers.AddItem(d))
		r.Post("/{sectionID}/items/reorder", handlers.ReorderItems(d))
		r.Put("/{sectionID}/items/{itemID}", handlers.UpdateItem(d))
		r.Delete("/{sectionID}/items/{itemID}", handlers.DeleteItem(d))
	})
}
