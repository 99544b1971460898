package handlers

import (
	"net/http"
	"strings"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
)

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest proxies search-as-you-type completion. The engine name picks
// the upstream; engines without a suggestion source, and every upstream
// failure, yield an empty list rather than an error.
func Suggest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		engineName := r.URL.Query().Get("engine")

		source := domain.SuggestionSource(r.URL.Query().Get("source"))
		if engineName != "" {
			if engine, ok := d.Service.FindEngine(engineName); ok {
				source = engine.SuggestionSource
			}
		}

		suggestions := d.Suggest.Suggest(r.Context(), query, source)
		if suggestions == nil {
			suggestions = []string{}
		}

		writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
	}
}
