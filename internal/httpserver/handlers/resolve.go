package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/mkbkakwk/mynav/internal/favicon"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/logger"
)

// Resolve fetches title, description and icon candidates for a URL the
// user is adding. The resolver degrades through its tiers on its own, so
// a response always comes back; only client disconnects abort it.
func Resolve(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		target := strings.TrimSpace(r.URL.Query().Get("url"))
		if target == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url parameter is required"})
			return
		}

		result, err := d.Resolver.Resolve(r.Context(), target)
		if err != nil {
			// Only cancellation reaches here: the client is gone.
			d.Logger.Debug("resolve aborted", logger.String("url", target), logger.Error(err))
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

type iconChainResponse struct {
	Candidates  []string `json:"candidates"`
	Placeholder string   `json:"placeholder"`
}

// IconChain returns the ordered favicon fallback ladder for an item, so
// the frontend can walk it on image error without another round trip.
func IconChain(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		site := strings.TrimSpace(r.URL.Query().Get("url"))
		if site == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "url parameter is required"})
			return
		}
		icon := r.URL.Query().Get("icon")

		size := 128
		if raw := r.URL.Query().Get("size"); raw != "" {
			if n, err := strconv.Atoi(raw); err == nil && n > 0 {
				size = n
			}
		}

		chain := favicon.NewChain(icon, site, size)
		writeJSON(w, http.StatusOK, iconChainResponse{
			Candidates:  chain.Candidates(),
			Placeholder: favicon.PlaceholderGlyph,
		})
	}
}
