package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/yesiampapa/rvc-split-audio/internal/config"
)

// MetricsServer exposes the Prometheus scrape endpoint and a health probe
// for the duration of a batch run. It is started only when metrics are
// enabled in the configuration.
type MetricsServer struct {
	server    *http.Server
	logger    *slog.Logger
	startTime time.Time
}

// NewMetricsServer creates the HTTP server for /metrics and /health.
func NewMetricsServer(cfg config.MetricsConfig, logger *slog.Logger) *MetricsServer {
	s := &MetricsServer{
		logger:    logger,
		startTime: time.Now(),
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", s.handleHealth)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Address, cfg.Port),
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// Start begins serving in a background goroutine.
func (s *MetricsServer) Start() error {
	s.logger.Info("Metrics server starting", slog.String("address", s.server.Addr))

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("Metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return nil
}

// Stop gracefully shuts the server down.
func (s *MetricsServer) Stop(ctx context.Context) error {
	s.logger.Info("Metrics server stopping")
	return s.server.Shutdown(ctx)
}

// handleHealth reports process liveness and uptime.
func (s *MetricsServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":         "ok",
		"uptime_seconds": time.Since(s.startTime).Seconds(),
	})
}
