// ABOUTME: End-to-end tests for rate limiting middleware
// ABOUTME: Tests full request flows with rate limit enforcement and disable mode

package e2e

import (
	"encoding/json"
	"net/http"
	"testing"
)

func TestRateLimit_E2E_Enforced(t *testing.T) {
	s := newStack(t, map[string]string{"RATE_LIMIT_DEFAULT": "3"})

	for i := 0; i < 3; i++ {
		resp, body := s.request(t, http.MethodGet, "/api/v1/health", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d should succeed, got %d: %s", i+1, resp.StatusCode, body)
		}
	}

	resp, body := s.request(t, http.MethodGet, "/api/v1/health", "", nil)
	if resp.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("4th request should be rate limited, got %d", resp.StatusCode)
	}
	if resp.Header.Get("Retry-After") == "" {
		t.Error("Expected Retry-After header")
	}

	var errResp map[string]interface{}
	if err := json.Unmarshal([]byte(body), &errResp); err != nil {
		t.Fatalf("Failed to decode 429 body: %v", err)
	}
	if errResp["error"] != "Rate limit exceeded" {
		t.Errorf("Unexpected error message %v", errResp["error"])
	}
}

func TestRateLimit_E2E_PerClient(t *testing.T) {
	s := newStack(t, map[string]string{"RATE_LIMIT_DEFAULT": "1"})

	first, _ := s.request(t, http.MethodGet, "/api/v1/health", "", map[string]string{"X-Forwarded-For": "203.0.113.1"})
	other, _ := s.request(t, http.MethodGet, "/api/v1/health", "", map[string]string{"X-Forwarded-For": "203.0.113.2"})
	again, _ := s.request(t, http.MethodGet, "/api/v1/health", "", map[string]string{"X-Forwarded-For": "203.0.113.1"})

	if first.StatusCode != http.StatusOK || other.StatusCode != http.StatusOK {
		t.Errorf("expected each client's first request to succeed, got %d and %d", first.StatusCode, other.StatusCode)
	}
	if again.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected repeat client to be limited, got %d", again.StatusCode)
	}
}

func TestRateLimit_E2E_Disabled(t *testing.T) {
	s := newStack(t, map[string]string{"RATE_LIMIT_ENABLED": "false", "RATE_LIMIT_DEFAULT": "1"})

	for i := 0; i < 5; i++ {
		resp, _ := s.request(t, http.MethodGet, "/api/v1/health", "", nil)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("Request %d: expected 200 with limiting disabled, got %d", i+1, resp.StatusCode)
		}
	}
}
