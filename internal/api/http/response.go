// Package http exposes the JSON API over gorilla/mux.
package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jcamiloaa/experienciaas/internal/logger"
	"github.com/jcamiloaa/experienciaas/internal/service"
)

// envelope is the uniform response shape. No-op outcomes come back
// with success=true and a message explaining why nothing changed.
type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message,omitempty"`
	Error   string `json:"error,omitempty"`
}

type paginated struct {
	Items    any   `json:"items"`
	Total    int32 `json:"total"`
	Page     int32 `json:"page"`
	PageSize int32 `json:"page_size"`
}

func writeJSON(w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Warn("response encoding failed", "error", err)
	}
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, envelope{Success: true, Data: data})
}

func writeMessage(w http.ResponseWriter, status int, data any, message string) {
	writeJSON(w, status, envelope{Success: true, Data: data, Message: message})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, envelope{Success: false, Error: message})
}

// writeServiceError maps the service sentinels onto HTTP statuses.
// Idempotent no-ops are not failures: the state the caller asked for
// already holds, so they get a 200 with a warning message.
func writeServiceError(w http.ResponseWriter, err error, data any) {
	switch {
	case errors.Is(err, service.ErrAlreadyProcessed), errors.Is(err, service.ErrInvalidTransition):
		writeMessage(w, http.StatusOK, data, err.Error())
	case errors.Is(err, service.ErrValidation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrNotAuthorized), errors.Is(err, service.ErrProtectedAccount):
		writeError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrEmailTaken):
		writeError(w, http.StatusConflict, err.Error())
	default:
		logger.Error("request failed", "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeBody(w http.ResponseWriter, r *http.Request, dest any) bool {
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return false
	}
	return true
}
