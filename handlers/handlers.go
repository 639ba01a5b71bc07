// ABOUTME: HTTP adapter that turns requests into trigger events for the router
// ABOUTME: The router's status envelope becomes the HTTP status and body

package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	lambdaevents "github.com/aws/aws-lambda-go/events"

	"github.com/markalston/migration-assessor/config"
	"github.com/markalston/migration-assessor/models"
	"github.com/markalston/migration-assessor/services"
)

// EventHandler handles one raw trigger and always returns an envelope.
type EventHandler interface {
	Handle(ctx context.Context, raw json.RawMessage) models.Response
}

type Handler struct {
	cfg     *config.Config
	events  EventHandler
	started time.Time
}

func NewHandler(cfg *config.Config, events EventHandler) *Handler {
	if cfg == nil {
		cfg = &config.Config{}
	}
	return &Handler{
		cfg:     cfg,
		events:  events,
		started: time.Now(),
	}
}

// directEvent mirrors the API Gateway proxy fields the router reads.
type directEvent struct {
	HTTPMethod string  `json:"httpMethod"`
	Path       string  `json:"path,omitempty"`
	Body       *string `json:"body,omitempty"`
}

type lookupEvent struct {
	PathParameters map[string]string `json:"pathParameters"`
}

// IngestRequest names the stored object to bulk-ingest.
type IngestRequest struct {
	Bucket string `json:"bucket"`
	Key    string `json:"key"`
}

// SubmitServer forwards a request on the servers collection as a direct
// ingestion event. Every method is forwarded so the router decides which
// ones are allowed. An empty body is sent as absent.
func (h *Handler) SubmitServer(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	event := directEvent{HTTPMethod: r.Method, Path: r.URL.Path}
	if len(body) > 0 {
		text := string(body)
		event.Body = &text
	}
	h.dispatch(w, r, event)
}

// GetServer looks up a stored assessment by server name.
func (h *Handler) GetServer(w http.ResponseWriter, r *http.Request) {
	h.dispatch(w, r, lookupEvent{
		PathParameters: map[string]string{"server_id": r.PathValue("server_id")},
	})
}

// IngestObject builds a storage notification for one object and runs bulk ingestion.
func (h *Handler) IngestObject(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}

	var req IngestRequest
	if err := json.Unmarshal(body, &req); err != nil {
		h.writeError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Bucket == "" || req.Key == "" {
		h.writeError(w, "bucket and key are required", http.StatusBadRequest)
		return
	}
	if err := services.ValidateBucketName(req.Bucket); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}
	if err := services.ValidateObjectKey(req.Key); err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	h.dispatch(w, r, lambdaevents.S3Event{
		Records: []lambdaevents.S3EventRecord{{
			EventSource: "aws:s3",
			EventName:   "ObjectCreated:Put",
			EventTime:   time.Now().UTC(),
			S3: lambdaevents.S3Entity{
				Bucket: lambdaevents.S3Bucket{Name: req.Bucket},
				// Notification keys arrive URL-encoded.
				Object: lambdaevents.S3Object{Key: url.QueryEscape(req.Key)},
			},
		}},
	})
}

// RawEvent passes the request body to the router unchanged.
func (h *Handler) RawEvent(w http.ResponseWriter, r *http.Request) {
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	h.writeEnvelope(w, h.events.Handle(r.Context(), body))
}

func (h *Handler) dispatch(w http.ResponseWriter, r *http.Request, event interface{}) {
	raw, err := json.Marshal(event)
	if err != nil {
		slog.Error("Failed to encode trigger event", "error", err)
		h.writeError(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	h.writeEnvelope(w, h.events.Handle(r.Context(), raw))
}

func (h *Handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	reader := io.Reader(r.Body)
	if h.cfg.MaxObjectBytes > 0 {
		reader = http.MaxBytesReader(w, r.Body, h.cfg.MaxObjectBytes)
	}
	body, err := io.ReadAll(reader)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			h.writeError(w, "Request body too large", http.StatusRequestEntityTooLarge)
			return nil, false
		}
		h.writeError(w, "Failed to read request body", http.StatusBadRequest)
		return nil, false
	}
	return body, true
}

func (h *Handler) writeEnvelope(w http.ResponseWriter, resp models.Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.StatusCode)
	io.WriteString(w, resp.Body)
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	h.writeJSON(w, code, models.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
