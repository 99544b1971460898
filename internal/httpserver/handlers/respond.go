package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mkbkakwk/mynav/internal/domain"
	"github.com/mkbkakwk/mynav/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeDomainError maps dataset rule violations onto HTTP statuses. The
// guard-rail rejections come back as 409 with a message the frontend
// shows verbatim.
func writeDomainError(w http.ResponseWriter, log logger.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrLastCategory):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "at least one category must remain"})
	case errors.Is(err, domain.ErrLastEngine):
		writeJSON(w, http.StatusConflict, errorResponse{Error: "at least one search engine must remain"})
	case errors.Is(err, domain.ErrDuplicateID):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrEmptyField), errors.Is(err, domain.ErrIndexRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, domain.ErrSectionNotFound),
		errors.Is(err, domain.ErrItemNotFound),
		errors.Is(err, domain.ErrCategoryNotFound),
		errors.Is(err, domain.ErrEngineNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		log.Error("request failed", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return false
	}
	return true
}
