// ABOUTME: Test helpers for e2e tests
// ABOUTME: Builds the full HTTP stack from environment configuration

package e2e

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/markalston/migration-assessor/config"
	"github.com/markalston/migration-assessor/events"
	"github.com/markalston/migration-assessor/handlers"
	"github.com/markalston/migration-assessor/metrics"
	"github.com/markalston/migration-assessor/middleware"
	"github.com/markalston/migration-assessor/services"
)

// withTestEnv points the backends at memory and a temp object directory,
// plus additional vars, returning a cleanup function that restores all
// original values.
//
// Example:
//
//	func TestSomething(t *testing.T) {
//	    t.Cleanup(withTestEnv(t, map[string]string{
//	        "CORS_ALLOWED_ORIGINS": "https://example.com",
//	    }))
//	}
func withTestEnv(t *testing.T, objectDir string, extra map[string]string) func() {
	t.Helper()

	vars := map[string]string{
		"ENV_FILE":       "",
		"STORE_BACKEND":  config.BackendMemory,
		"OBJECT_BACKEND": config.BackendDir,
		"OBJECT_DIR":     objectDir,
	}
	for key, value := range extra {
		vars[key] = value
	}

	originals := make(map[string]*string, len(vars))
	for key, value := range vars {
		if old, ok := os.LookupEnv(key); ok {
			originals[key] = &old
		} else {
			originals[key] = nil
		}
		os.Setenv(key, value)
	}

	return func() {
		for key, value := range originals {
			if value == nil {
				os.Unsetenv(key)
			} else {
				os.Setenv(key, *value)
			}
		}
	}
}

// stack is a running server wired the same way as the service binary.
type stack struct {
	*httptest.Server
	objectDir string
}

func newStack(t *testing.T, extra map[string]string) *stack {
	t.Helper()

	dir := t.TempDir()
	t.Cleanup(withTestEnv(t, dir, extra))

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("config.Load failed: %v", err)
	}
	backends, err := services.NewBackends(cfg)
	if err != nil {
		t.Fatalf("NewBackends failed: %v", err)
	}
	t.Cleanup(backends.Close)

	m := metrics.New()
	router := events.NewRouter(services.NewProcessor(backends.Store, m), backends.Store, backends.Objects, m)
	h := handlers.NewHandler(cfg, router)

	var limiter *middleware.RateLimiter
	if cfg.RateLimitEnabled {
		limiter = middleware.NewRateLimiter(cfg.RateLimitDefault, time.Minute)
	}

	mux := http.NewServeMux()
	for _, route := range h.Routes() {
		mux.HandleFunc(route.Pattern(), middleware.Chain(route.Handler,
			middleware.LogRequest,
			middleware.Recover,
			middleware.CORS(cfg.CORSAllowedOrigins),
			middleware.RateLimit(limiter, middleware.ClientIP),
		))
	}
	mux.Handle("GET /metrics", m.HTTPHandler())

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return &stack{Server: srv, objectDir: dir}
}

func (s *stack) putObject(t *testing.T, bucket, key, content string) {
	t.Helper()
	path := filepath.Join(s.objectDir, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func (s *stack) request(t *testing.T, method, path, body string, headers map[string]string) (*http.Response, string) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req, err := http.NewRequest(method, s.URL+path, reader)
	if err != nil {
		t.Fatal(err)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := s.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatal(err)
	}
	return resp, string(data)
}
