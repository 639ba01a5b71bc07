// ABOUTME: HTTP client for the Migration Assessor API
// ABOUTME: Wraps API calls with proper error handling for CLI usage

package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ErrNotFound is returned when the API has no assessment for a server.
var ErrNotFound = errors.New("server not found")

// Client is the API client for the Migration Assessor backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New creates a new API client with the given base URL
func New(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// HealthResponse represents the /api/v1/health endpoint response
type HealthResponse struct {
	Status        string `json:"status"`
	StoreBackend  string `json:"store_backend"`
	ObjectBackend string `json:"object_backend"`
	Table         string `json:"table,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// ErrorResponse represents an API error
type ErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
	Code    int    `json:"code,omitempty"`
}

// Summary is the per-server result returned after submission.
type Summary struct {
	ServerName      string      `json:"server_name"`
	PrimaryStrategy string      `json:"primary_strategy"`
	EstimatedCost   json.Number `json:"estimated_cost"`
}

// CreatedResponse represents the POST /api/v1/servers response
type CreatedResponse struct {
	Message string  `json:"message"`
	Details Summary `json:"details"`
}

// Assessment is a stored server assessment. Structured fields are JSON text.
type Assessment struct {
	ServerName         string `json:"server_name"`
	InstanceType       string `json:"instance_type"`
	CPUUtilization     string `json:"cpu_utilization"`
	MemoryUtilization  string `json:"memory_utilization"`
	Storage            string `json:"storage"`
	NetworkUtilization string `json:"network_utilization"`
	Software           string `json:"software"`
	PrimaryStrategy    string `json:"primary_strategy"`
	StrategyScores     string `json:"strategy_scores"`
	Cost               string `json:"cost"`
}

// LookupResponse represents the GET /api/v1/servers/{server_id} response
type LookupResponse struct {
	Message string     `json:"message"`
	Server  Assessment `json:"server"`
}

// IngestResponse represents the POST /api/v1/ingest response
type IngestResponse struct {
	Message          string `json:"message"`
	RecordsProcessed int    `json:"records_processed"`
}

// Health calls GET /api/v1/health
func (c *Client) Health(ctx context.Context) (*HealthResponse, error) {
	var health HealthResponse
	if err := c.do(ctx, http.MethodGet, "/api/v1/health", nil, http.StatusOK, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// SubmitServer calls POST /api/v1/servers with one JSON record
func (c *Client) SubmitServer(ctx context.Context, record json.RawMessage) (*CreatedResponse, error) {
	var created CreatedResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/servers", record, http.StatusCreated, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// GetServer calls GET /api/v1/servers/{server_id}. A 404 returns ErrNotFound.
func (c *Client) GetServer(ctx context.Context, serverID string) (*LookupResponse, error) {
	var lookup LookupResponse
	err := c.do(ctx, http.MethodGet, "/api/v1/servers/"+url.PathEscape(serverID), nil, http.StatusOK, &lookup)
	var statusErr *StatusError
	if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &lookup, nil
}

// Ingest calls POST /api/v1/ingest for one stored object
func (c *Client) Ingest(ctx context.Context, bucket, key string) (*IngestResponse, error) {
	body, err := json.Marshal(map[string]string{"bucket": bucket, "key": key})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal input: %w", err)
	}

	var ingested IngestResponse
	if err := c.do(ctx, http.MethodPost, "/api/v1/ingest", body, http.StatusOK, &ingested); err != nil {
		return nil, err
	}
	return &ingested, nil
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, want int, out interface{}) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return c.handleRequestError(ctx, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		return c.handleErrorResponse(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("invalid response from backend: %w", err)
	}
	return nil
}

// handleRequestError converts context errors to user-friendly messages
func (c *Client) handleRequestError(ctx context.Context, err error) error {
	if errors.Is(ctx.Err(), context.Canceled) {
		return fmt.Errorf("request canceled")
	}
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Errorf("request timed out")
	}
	return fmt.Errorf("cannot connect to backend at %s: %w", c.baseURL, err)
}

// StatusError is returned when the backend answers with an unexpected status.
type StatusError struct {
	StatusCode int
	Message    string
	Details    string
}

func (e *StatusError) Error() string {
	switch {
	case e.Message == "":
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	case e.Details != "":
		return fmt.Sprintf("backend error: %s: %s", e.Message, e.Details)
	default:
		return fmt.Sprintf("backend error: %s", e.Message)
	}
}

// handleErrorResponse parses API error responses
func (c *Client) handleErrorResponse(resp *http.Response) error {
	statusErr := &StatusError{StatusCode: resp.StatusCode}
	var errResp ErrorResponse
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err == nil {
		statusErr.Message = errResp.Error
		statusErr.Details = errResp.Details
	}
	return statusErr
}
