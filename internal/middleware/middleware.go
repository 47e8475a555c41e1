// Package middleware provides HTTP middleware for the store API: request
// identification, authentication, rate limiting, metrics and body limits.
package middleware

import (
	"encoding/json"
	"net/http"
)

// writeJSONError writes a minimal JSON error body. Middleware responses are
// self-contained to avoid importing the handler package.
func writeJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
