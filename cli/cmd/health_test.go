// ABOUTME: Tests for the health command
// ABOUTME: Verifies health check output formatting and exit codes

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/markalston/migration-assessor/cli/internal/client"
)

func TestFormatHealthHuman(t *testing.T) {
	resp := &client.HealthResponse{Status: "ok", StoreBackend: "dynamodb", ObjectBackend: "s3", Table: "MigrationData", UptimeSeconds: 90}

	output := formatHealthHuman("http://localhost:8080", resp)

	for _, want := range []string{"http://localhost:8080", "Status:   ok", "Store:    dynamodb", "Table:    MigrationData", "Uptime:   1m30s"} {
		if !strings.Contains(output, want) {
			t.Errorf("expected output to contain %q, got:\n%s", want, output)
		}
	}
}

func TestFormatHealthHuman_NoTable(t *testing.T) {
	output := formatHealthHuman("http://localhost:8080", &client.HealthResponse{Status: "ok", StoreBackend: "memory"})

	if strings.Contains(output, "Table:") {
		t.Errorf("expected no table line for memory store, got:\n%s", output)
	}
}

func TestFormatHealthJSON(t *testing.T) {
	output := formatHealthJSON("http://localhost:8080", &client.HealthResponse{Status: "ok", StoreBackend: "memory"})

	var parsed map[string]interface{}
	if err := json.Unmarshal([]byte(output), &parsed); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if parsed["backend"] != "http://localhost:8080" {
		t.Errorf("expected backend URL in JSON, got %v", parsed["backend"])
	}
	if parsed["store_backend"] != "memory" {
		t.Errorf("expected store_backend memory, got %v", parsed["store_backend"])
	}
}

func TestHealthCommand_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(client.HealthResponse{Status: "ok", StoreBackend: "memory", ObjectBackend: "dir"})
	}))
	defer server.Close()

	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 0 {
		t.Errorf("expected exit code 0, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("ok")) {
		t.Error("expected ok in output")
	}
}

func TestHealthCommand_ConnectionError(t *testing.T) {
	apiURL = "http://localhost:99999"
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	exitCode := runHealth(context.Background(), &buf)

	if exitCode != 2 {
		t.Errorf("expected exit code 2, got %d", exitCode)
	}
	if !bytes.Contains(buf.Bytes(), []byte("Error:")) {
		t.Error("expected error message in output")
	}
}
