package cli

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/aretw0/rephraser/pkg/observability"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewMetricsHandler exposes /metrics for m and a /healthz probe.
func NewMetricsHandler(m *observability.Metrics) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		w.Write([]byte("ok\n"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{}))
	return r
}

// MetricsServer serves the metrics endpoints for the duration of a run.
type MetricsServer struct {
	srv      *http.Server
	listener net.Listener
	errs     chan error
	logger   *slog.Logger
}

// StartMetricsServer binds addr and serves in the background.
func StartMetricsServer(addr string, m *observability.Metrics, logger *slog.Logger) (*MetricsServer, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}
	s := &MetricsServer{
		srv: &http.Server{
			Handler:           NewMetricsHandler(m),
			ReadHeaderTimeout: 5 * time.Second,
		},
		listener: ln,
		errs:     make(chan error, 1),
		logger:   logger,
	}
	go func() {
		s.errs <- s.srv.Serve(ln)
	}()
	logger.Info("Metrics server listening", "addr", ln.Addr().String())
	return s, nil
}

// Addr returns the bound address.
func (s *MetricsServer) Addr() string {
	return s.listener.Addr().String()
}

// Stop shuts the server down, giving scrapes in flight a short deadline.
func (s *MetricsServer) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.srv.Shutdown(ctx); err != nil {
		s.logger.Warn("Metrics server did not shut down gracefully", "err", err)
		return s.srv.Close()
	}
	if err := <-s.errs; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
