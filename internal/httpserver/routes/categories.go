package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/httpserver/handlers"
	"github.com/mkbkakwk/mynav/internal/httpserver/mw"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger), mw.EnforceHost(d.AllowedHosts, d.Logger)).Route("/api/categories", func(r chi.Router) {
		r.Post("/", handlers.AddCategory(d))
		r.Post("/reorder", handlers.ReorderCategories(d))
		r.Delete("/{categoryID}", handlers.DeleteCategory(d))
		r.Post("/{categoryID}/engines", handlers.AddEngine(d))
		r.Delete("/{categoryID}/engines/{name}", handlers.DeleteEngine(d))
	})
}
