// ABOUTME: Declarative route table for API endpoints
// ABOUTME: Defines all routes with their HTTP methods and handlers

package handlers

import "net/http"

// Route defines an API endpoint with its HTTP method and handler.
type Route struct {
	Method  string           // HTTP method; empty matches every method
	Path    string           // URL path (e.g., "/api/v1/health")
	Handler http.HandlerFunc // Handler function
}

// Pattern returns the ServeMux pattern for the route.
func (r Route) Pattern() string {
	if r.Method == "" {
		return r.Path
	}
	return r.Method + " " + r.Path
}

// Routes returns all API routes for registration.
func (h *Handler) Routes() []Route {
	return []Route{
		// Health
		{Method: http.MethodGet, Path: "/api/v1/health", Handler: h.Health},

		// Servers
		{Path: "/api/v1/servers", Handler: h.SubmitServer},
		{Method: http.MethodGet, Path: "/api/v1/servers/{server_id}", Handler: h.GetServer},

		// Ingestion
		{Method: http.MethodPost, Path: "/api/v1/ingest", Handler: h.IngestObject},
		{Method: http.MethodPost, Path: "/api/v1/events", Handler: h.RawEvent},

		// Documentation
		{Method: http.MethodGet, Path: "/api/v1/openapi.yaml", Handler: h.OpenAPISpec},
	}
}
