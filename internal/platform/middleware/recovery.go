package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"
)

// Recovery converts panics into a 500 error envelope. The stack trace is
// logged server-side and never exposed to the client.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.ErrorContext(r.Context(), "panic recovered",
						"request_id", GetRequestID(r.Context()),
						"panic", rec,
						"stack", string(debug.Stack()),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]any{
						"statusCode": http.StatusInternalServerError,
						"timestamp":  time.Now().UTC().Format(time.RFC3339),
						"path":       r.URL.Path,
						"message":    "Internal server error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
