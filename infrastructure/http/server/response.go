package server

import (
	"clinic-chat/errors"
	"encoding/json"
	"log/slog"
	"net/http"
)

type envelope map[string]any

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError answers {success:false, message} with the status of the error class.
// Internal failures are logged and never leak their cause.
func writeError(log *slog.Logger, w http.ResponseWriter, err error) {
	status := errors.ToHTTPStatus(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		log.Error("Request failed", "error", err)
		message = "internal error"
	}
	writeJSON(w, status, envelope{"success": false, "message": message})
}

// ErrorWriter adapts writeError for middlewares living outside this package.
func ErrorWriter(log *slog.Logger) func(w http.ResponseWriter, err error) {
	return func(w http.ResponseWriter, err error) {
		writeError(log, w, err)
	}
}
