// ABOUTME: HTTP handler for the health endpoint
// ABOUTME: Reports configured backends and uptime

package handlers

import (
	"net/http"
	"time"

	"github.com/markalston/migration-assessor/config"
)

// HealthResponse describes the running service.
type HealthResponse struct {
	Status        string `json:"status"`
	StoreBackend  string `json:"store_backend"`
	ObjectBackend string `json:"object_backend"`
	Table         string `json:"table,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// Health returns API health status and the configured backends.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:        "ok",
		StoreBackend:  h.cfg.StoreBackend,
		ObjectBackend: h.cfg.ObjectBackend,
		UptimeSeconds: int64(time.Since(h.started) / time.Second),
	}
	if h.cfg.StoreBackend == config.BackendDynamoDB {
		resp.Table = h.cfg.TableName
	}
	h.writeJSON(w, http.StatusOK, resp)
}
