package handlers

import (
	"errors"
	"net/http"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/httpserver/deps"
	"github.com/mkbkakwk/mynav/internal/logger"
	cloudsync "github.com/mkbkakwk/mynav/internal/sync"
)

type syncSettingsResponse struct {
	Owner    string `json:"owner"`
	Repo     string `json:"repo"`
	Enabled  bool   `json:"enabled"`
	HasToken bool   `json:"hasToken"`
}

// GetSyncSettings returns the sync configuration with the token redacted.
func GetSyncSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		settings := d.Service.Settings()
		writeJSON(w, http.StatusOK, syncSettingsResponse{
			Owner:    settings.Owner,
			Repo:     settings.Repo,
			Enabled:  settings.Enabled,
			HasToken: settings.Token != "",
		})
	}
}

// UpdateSyncSettings stores new sync configuration. An omitted token
// keeps the stored one.
func UpdateSyncSettings(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body domain.SyncSettings
		if !decodeBody(w, r, &body) {
			return
		}

		if err := d.Service.UpdateSettings(r.Context(), body); err != nil {
			writeDomainError(w, d.Logger, err)
			return
		}

		d.Logger.Info("sync settings updated",
			logger.String("owner", body.Owner),
			logger.String("repo", body.Repo))

		settings := d.Service.Settings()
		writeJSON(w, http.StatusOK, syncSettingsResponse{
			Owner:    settings.Owner,
			Repo:     settings.Repo,
			Enabled:  settings.Enabled,
			HasToken: settings.Token != "",
		})
	}
}

// SyncNow pushes the dataset to the remote repository immediately.
func SyncNow(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := d.Service.SyncNow(r.Context())
		switch {
		case err == nil:
			w.WriteHeader(http.StatusAccepted)
		case errors.Is(err, cloudsync.ErrSkipped):
			writeJSON(w, http.StatusPreconditionFailed, errorResponse{Error: "cloud sync is not configured or not allowed here"})
		case errors.Is(err, cloudsync.ErrConflict):
			writeJSON(w, http.StatusConflict, errorResponse{Error: "remote content changed, try again"})
		default:
			d.Logger.Error("manual sync failed", logger.Error(err))
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: "push to remote failed"})
		}
	}
}
