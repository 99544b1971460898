package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/logger"
)

func AddCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Category
		if !decodeBody(w, r, &body) {
			return
		}

		created, err := d.Service.AddCategory(r.Context(), body)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("category added",
			logger.String("id", created.ID),
			logger.String("name", created.Name))
		writeJSON(w, http.StatusCreated, created)
	}
}

func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "categoryID")

		if err := d.Service.DeleteCategory(r.Context(), id); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("category deleted", logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body swapRequest
		if !decodeBody(w, r, &body) {
			return
		}

		if err := d.Service.SwapCategories(r.Context(), body.From, body.To); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Service.Dataset())
	}
}

func AddEngine(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")

		var body domain.SearchEngine
		if !decodeBody(w, r, &body) {
			return
		}

		created, err := d.Service.AddEngine(r.Context(), categoryID, body)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("engine added",
			logger.String("category", categoryID),
			logger.String("name", created.Name))
		writeJSON(w, http.StatusCreated, created)
	}
}

func DeleteEngine(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID := chi.URLParam(r, "categoryID")
		name := chi.URLParam(r, "name")

		if err := d.Service.DeleteEngine(r.Context(), categoryID, name); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
