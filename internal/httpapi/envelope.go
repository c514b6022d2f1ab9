package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"academy/pkg/apperrors"
)

// Envelope is the uniform error body. Every failed request produces exactly
// one of these at the outermost boundary; no other layer writes errors.
type Envelope struct {
	StatusCode int    `json:"statusCode"`
	Timestamp  string `json:"timestamp"`
	Path       string `json:"path"`
	Message    string `json:"message"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError translates err into the error envelope. The status comes from
// the error's code; the message is the error's client-safe text.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	status := apperrors.HTTPStatus(apperrors.CodeOf(err))
	WriteJSON(w, status, Envelope{
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       r.URL.Path,
		Message:    apperrors.MessageOf(err),
	})
}
