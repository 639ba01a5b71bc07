// ABOUTME: JSON error response helper for middleware
// ABOUTME: Error bodies share the models.ErrorResponse shape used by handlers

package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/markalston/migration-assessor/models"
)

func writeJSONError(w http.ResponseWriter, message string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
