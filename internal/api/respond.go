// Package api exposes the pipeline over HTTP.
package api

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"portfolio-backend/internal/apperr"
)

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps a classified pipeline error to an HTTP response.
// unavailableStatus lets the proxy endpoints answer 503 while the query
// endpoint answers 502 for the same kind.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error, unavailableStatus int) {
	status := http.StatusInternalServerError
	switch apperr.KindOf(err) {
	case apperr.KindInvalidRequest:
		status = http.StatusBadRequest
	case apperr.KindNotFound:
		status = http.StatusNotFound
	case apperr.KindAuth:
		status = http.StatusUnauthorized
	case apperr.KindUnavailable:
		status = unavailableStatus
	}

	// Client mistakes are not server faults; log them quietly.
	if status == http.StatusBadRequest || status == http.StatusNotFound {
		logger.Debug("request rejected", zap.Int("status", status), zap.Error(err))
	} else {
		logger.Error("request failed", zap.Int("status", status), zap.Error(err))
	}

	writeJSON(w, status, errorBody{Error: err.Error()})
}
