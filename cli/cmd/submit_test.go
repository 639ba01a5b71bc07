// ABOUTME: Tests for the submit command
// ABOUTME: Verifies one request per record and stop-on-error behavior

package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSubmit_EachRecord(t *testing.T) {
	var names []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var rec map[string]interface{}
		json.NewDecoder(r.Body).Decode(&rec)
		name, _ := rec["server_name"].(string)
		names = append(names, name)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"message":"Server data added successfully","details":{"server_name":"`+name+`","primary_strategy":"refactor","estimated_cost":600.00}}`)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	path := writeInventory(t, `[{"server_name":"a","cpu":50},{"server_name":"b","cpu":"55.5"}]`)

	var buf bytes.Buffer
	if code := runSubmit(context.Background(), &buf, path); code != 0 {
		t.Fatalf("expected exit code 0, got %d: %s", code, buf.String())
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("expected records a and b submitted in order, got %v", names)
	}
	if !strings.Contains(buf.String(), "600.00") {
		t.Errorf("expected cost in output, got %s", buf.String())
	}
}

func TestSubmit_PreservesNumbers(t *testing.T) {
	var body string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, _ := io.ReadAll(r.Body)
		body = string(data)
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"message":"ok","details":{"server_name":"a","primary_strategy":"refactor","estimated_cost":600.00}}`)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	runSubmit(context.Background(), &buf, writeInventory(t, `{"server_name":"a","cpu":29.999999999999999999}`))

	if !strings.Contains(body, "29.999999999999999999") {
		t.Errorf("expected exact number forwarded, got %s", body)
	}
}

func TestSubmit_StopsOnRejection(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"Failed to process request","details":"throttled"}`)
	}))
	defer server.Close()
	apiURL = server.URL
	defer func() { apiURL = "" }()

	var buf bytes.Buffer
	code := runSubmit(context.Background(), &buf, writeInventory(t, `[{"server_name":"a"},{"server_name":"b"}]`))

	if code != 2 {
		t.Errorf("expected exit code 2, got %d", code)
	}
	if calls != 1 {
		t.Errorf("expected submission to stop after the first failure, got %d calls", calls)
	}
	if !strings.Contains(buf.String(), "record 1 (a)") {
		t.Errorf("expected failing record named, got %s", buf.String())
	}
}
