package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/yesiampapa/rvc-split-audio/internal/config"
)

func testServer() *MetricsServer {
	cfg := config.MetricsConfig{Enabled: true, Address: "127.0.0.1", Port: 9090}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewMetricsServer(cfg, logger)
}

func TestHandleHealth(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rec.Code)
	}

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("Expected JSON content type, got %q", ct)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to parse health response: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("Expected status ok, got %v", body["status"])
	}

	if _, ok := body["uptime_seconds"]; !ok {
		t.Error("Expected uptime_seconds in health response")
	}
}

func TestHandleHealthRejectsNonGet(t *testing.T) {
	s := testServer()

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()
	s.handleHealth(rec, req)

	if rec.Code != http.StatusMethodNotAllowed {
		t.Errorf("Expected status 405, got %d", rec.Code)
	}
}

func TestServerAddress(t *testing.T) {
	s := testServer()

	if s.server.Addr != "127.0.0.1:9090" {
		t.Errorf("Expected address 127.0.0.1:9090, got %q", s.server.Addr)
	}
}
