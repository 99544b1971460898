package handlers

import (
	"net/http"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
)

// Dataset returns the full reconciled dataset the start page renders.
func Dataset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Service.Dataset())
	}
}
