// ABOUTME: Shared API error model for the migration assessor
// ABOUTME: JSON-serializable structures matching front-end expectations

package models

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code,omitempty"`
}
