package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/logger"
)

type swapRequest struct {
	From int `json:"from"`
	To   int `json:"to"`
}

func AddSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.Section
		if !decodeBody(w, r, &body) {
			return
		}

		created, err := d.Service.AddSection(r.Context(), body)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("section added",
			logger.String("id", created.ID),
			logger.String("title", created.Title))
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sectionID")

		var body struct {
			Title string `json:"title"`
			Icon  string `json:"icon"`
		}
		if !decodeBody(w, r, &body) {
			return
		}

		if err := d.Service.UpdateSection(r.Context(), id, body.Title, body.Icon); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Service.Dataset())
	}
}

func DeleteSection(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "sectionID")

		if err := d.Service.DeleteSection(r.Context(), id); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("section deleted", logger.String("id", id))
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderSections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body swapRequest
		if !decodeBody(w, r, &body) {
			return
		}

		if err := d.Service.SwapSections(r.Context(), body.From, body.To); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Service.Dataset())
	}
}

func AddItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")

		var body domain.BookmarkItem
		if !decodeBody(w, r, &body) {
			return
		}

		created, err := d.Service.AddItem(r.Context(), sectionID, body)
		if err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("item added",
			logger.String("section", sectionID),
			logger.String("id", created.ID),
			logger.String("url", created.URL))
		writeJSON(w, http.StatusCreated, created)
	}
}

func UpdateItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		itemID := chi.URLParam(r, "itemID")

		var body domain.BookmarkItem
		if !decodeBody(w, r, &body) {
			return
		}
		body.ID = itemID

		if err := d.Service.UpdateItem(r.Context(), sectionID, body); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, body)
	}
}

func DeleteItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")
		itemID := chi.URLParam(r, "itemID")

		if err := d.Service.DeleteItem(r.Context(), sectionID, itemID); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func ReorderItems(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID := chi.URLParam(r, "sectionID")

		var body swapRequest
		if !decodeBody(w, r, &body) {
			return
		}

		if err := d.Service.SwapItems(r.Context(), sectionID, body.From, body.To); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Service.Dataset())
	}
}
