package metrics

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andrescamacho/greeter-go/internal/infrastructure/config"
)

// Server exposes the Prometheus registry over HTTP for scraping
type Server struct {
	cfg    *config.MetricsConfig
	logger *slog.Logger
	server *http.Server
}

// NewServer creates a metrics server for the given configuration
func NewServer(cfg *config.MetricsConfig, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{cfg: cfg, logger: logger}
}

// Start begins serving the metrics endpoint in a background goroutine.
// It is a no-op when metrics are disabled or the registry is not initialized.
func (s *Server) Start() error {
	if !s.cfg.Enabled {
		return nil
	}
	if Registry == nil {
		return fmt.Errorf("metrics registry is not initialized")
	}

	mux := http.NewServeMux()
	mux.Handle(s.cfg.Path, promhttp.HandlerFor(Registry, promhttp.HandlerOpts{}))
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	addr := fmt.Sprintf("%s:%d", s.cfg.Host, s.cfg.Port)
	s.server = &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}

	s.logger.Info("starting metrics server", "addr", addr, "path", s.cfg.Path)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.logger.Error("metrics server error", "error", err)
		}
	}()

	return nil
}

// Shutdown stops the metrics server, waiting for in-flight scrapes
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}
