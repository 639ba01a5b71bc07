// ABOUTME: Status-code plus JSON-body envelope returned for every trigger
// ABOUTME: Shared by the Lambda entrypoint and the HTTP adapter

package models

import (
	"encoding/json"
	"net/http"
)

// Response is the envelope produced for every trigger: an HTTP-style status
// code and a JSON document carried as a string.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// NewResponse encodes payload as the response body. Encoding failures turn
// into a 500 envelope so callers always get a well-formed response.
func NewResponse(status int, payload interface{}) Response {
	body, err := json.Marshal(payload)
	if err != nil {
		fallback, _ := json.Marshal(ErrorResponse{
			Error:   "Internal Server Error",
			Details: err.Error(),
		})
		return Response{StatusCode: http.StatusInternalServerError, Body: string(fallback)}
	}
	return Response{StatusCode: status, Body: string(body)}
}

// IngestResult is the bulk ingestion body.
type IngestResult struct {
	Message          string `json:"message"`
	RecordsProcessed int    `json:"records_processed"`
}

// CreatedResult is the direct ingestion body.
type CreatedResult struct {
	Message string            `json:"message"`
	Details AssessmentSummary `json:"details"`
}

// LookupResult is the body for a found server.
type LookupResult struct {
	Message string              `json:"message"`
	Server  MigrationAssessment `json:"server"`
}

// NotFoundResult is the body for a lookup miss.
type NotFoundResult struct {
	Error    string `json:"error"`
	ServerID string `json:"server_id"`
}

// MethodNotAllowedResult lists the methods direct ingestion accepts.
type MethodNotAllowedResult struct {
	Error          string   `json:"error"`
	AllowedMethods []string `json:"allowed_methods"`
}
