// ABOUTME: Routes classified triggers to bulk ingestion, direct ingestion, or lookup
// ABOUTME: Always returns a status envelope; errors and panics become 500 responses

package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/markalston/migration-assessor/models"
	"github.com/markalston/migration-assessor/services"
)

// EventRecorder observes handled triggers, e.g. for metrics.
type EventRecorder interface {
	RecordEvent(trigger string, status int, elapsed time.Duration)
}

// Router dispatches one trigger per call and keeps no state between calls.
type Router struct {
	processor *services.Processor
	store     services.Store
	objects   services.ObjectStore
	recorder  EventRecorder
}

// NewRouter creates a router. recorder may be nil.
func NewRouter(processor *services.Processor, store services.Store, objects services.ObjectStore, recorder EventRecorder) *Router {
	return &Router{
		processor: processor,
		store:     store,
		objects:   objects,
		recorder:  recorder,
	}
}

// AllowedIngestMethods are the request methods direct ingestion accepts.
var AllowedIngestMethods = []string{http.MethodPost}

// ErrInvalidObject wraps parse failures of a bulk inventory object.
var ErrInvalidObject = errors.New("invalid JSON format in S3 object")

// Handle classifies raw and dispatches it.
func (r *Router) Handle(ctx context.Context, raw json.RawMessage) (resp models.Response) {
	start := time.Now()
	trigger := Classify(raw)

	slog.Debug("Incoming event", "trigger", trigger.Kind(), "event", string(raw))

	defer func() {
		if p := recover(); p != nil {
			slog.Error("Panic while handling event",
				"trigger", trigger.Kind(),
				"panic", p,
				"stack", string(debug.Stack()),
			)
			resp = internalError(fmt.Errorf("%v", p))
		}
		if r.recorder != nil {
			r.recorder.RecordEvent(string(trigger.Kind()), resp.StatusCode, time.Since(start))
		}
	}()

	resp, err := r.dispatch(ctx, trigger)
	if err != nil {
		slog.Error("Event handling failed", "trigger", trigger.Kind(), "error", err)
		return internalError(err)
	}
	return resp
}

func (r *Router) dispatch(ctx context.Context, trigger Trigger) (models.Response, error) {
	switch t := trigger.(type) {
	case BulkIngest:
		return r.handleBulk(ctx, t)
	case DirectIngest:
		return r.handleDirect(ctx, t), nil
	case Lookup:
		return r.handleLookup(ctx, t)
	case Unsupported:
		slog.Error("Unsupported event type", "event", string(t.Raw))
		return models.NewResponse(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Unsupported event source",
			Details: string(t.Raw),
		}), nil
	default:
		return models.Response{}, fmt.Errorf("unhandled trigger kind %s", trigger.Kind())
	}
}

func (r *Router) handleBulk(ctx context.Context, t BulkIngest) (models.Response, error) {
	if t.Err != nil {
		return models.Response{}, fmt.Errorf("invalid S3 notification record: %w", t.Err)
	}
	if t.Bucket == "" || t.Key == "" {
		return models.Response{}, errors.New("S3 notification record is missing bucket name or object key")
	}

	data, err := r.objects.GetObject(ctx, t.Bucket, t.Key)
	if err != nil {
		return models.Response{}, err
	}

	records, err := models.DecodeServerRecords(data)
	if err != nil {
		return models.Response{}, fmt.Errorf("%w: %v", ErrInvalidObject, err)
	}

	slog.Info("Processing bulk inventory", "bucket", t.Bucket, "key", t.Key, "records", len(records))

	// Records are written one at a time; a failure leaves earlier writes in place.
	for i, record := range records {
		if _, err := r.processor.Process(ctx, record); err != nil {
			return models.Response{}, fmt.Errorf("record %d of %d: %w", i+1, len(records), err)
		}
	}

	return models.NewResponse(http.StatusOK, models.IngestResult{
		Message:          "Data processed successfully from S3",
		RecordsProcessed: len(records),
	}), nil
}

func (r *Router) handleDirect(ctx context.Context, t DirectIngest) models.Response {
	if !methodAllowed(t.Method) {
		return models.NewResponse(http.StatusMethodNotAllowed, models.MethodNotAllowedResult{
			Error:          "Method Not Allowed",
			AllowedMethods: AllowedIngestMethods,
		})
	}

	summary, err := r.ingestBody(ctx, t)
	if err != nil {
		slog.Error("POST request processing failed", "error", err)
		return models.NewResponse(http.StatusBadRequest, models.ErrorResponse{
			Error:   "Failed to process request",
			Details: err.Error(),
		})
	}

	return models.NewResponse(http.StatusCreated, models.CreatedResult{
		Message: "Server data added successfully",
		Details: summary,
	})
}

func (r *Router) ingestBody(ctx context.Context, t DirectIngest) (models.AssessmentSummary, error) {
	if t.BodyErr != nil {
		return models.AssessmentSummary{}, t.BodyErr
	}
	record, err := models.DecodeServerRecord([]byte(t.Body))
	if err != nil {
		return models.AssessmentSummary{}, err
	}
	return r.processor.Process(ctx, record)
}

func (r *Router) handleLookup(ctx context.Context, t Lookup) (models.Response, error) {
	if t.ServerID == "" {
		return models.NewResponse(http.StatusBadRequest, models.ErrorResponse{
			Error: "Missing server_id in pathParameters",
		}), nil
	}

	item, found, err := r.store.GetItem(ctx, t.ServerID)
	if err != nil {
		return models.Response{}, err
	}
	if !found {
		return models.NewResponse(http.StatusNotFound, models.NotFoundResult{
			Error:    "Server not found",
			ServerID: t.ServerID,
		}), nil
	}

	return models.NewResponse(http.StatusOK, models.LookupResult{
		Message: "Server found",
		Server:  *item,
	}), nil
}

func methodAllowed(method string) bool {
	for _, m := range AllowedIngestMethods {
		if method == m {
			return true
		}
	}
	return false
}

func internalError(err error) models.Response {
	return models.NewResponse(http.StatusInternalServerError, models.ErrorResponse{
		Error:   "Internal Server Error",
		Details: err.Error(),
	})
}
