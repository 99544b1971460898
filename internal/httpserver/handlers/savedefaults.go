package handlers

import (
	"net/http"

	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/logger"
	"github.com/mkbkakwk/mynav/internal/sources/defaults"
)

// SaveDefaults writes the live dataset back into the defaults file, so a
// curated local state can be promoted to the shipped baseline. Dev only.
func SaveDefaults(d deps.Deps) http.HandlerFunc {
	writer := defaults.NewWriter(d.DefaultsFile)

	return func(w http.ResponseWriter, r *http.Request) {
		dataset := d.Service.Dataset()

		if err := writer.Write(dataset); err != nil {
			d.Logger.Error("failed to write defaults file", logger.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to write defaults file"})
			return
		}

		d.Logger.Info("defaults file updated",
			logger.String("path", d.DefaultsFile),
			logger.Int("sections", len(dataset.Sections)))
		w.WriteHeader(http.StatusNoContent)
	}
}
