// Package server exposes the matching pipeline over HTTP: single and
// multi profile matching, tender analysis, health, and metrics.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/talentmatch/talentmatch/internal/domain"
	"github.com/talentmatch/talentmatch/internal/matching"
)

// TenderAnalyzer is the profile-detection oracle seen from the HTTP
// layer.
type TenderAnalyzer interface {
	AnalyzeTender(ctx context.Context, text string) (domain.TenderAnalysis, error)
}

// Config holds the server wiring.
type Config struct {
	// Addr is the listen address.
	Addr string

	// BatchSize is the candidates-per-oracle-request batch size.
	BatchSize int

	// DefaultWeights applies when a request carries no weights.
	DefaultWeights domain.WeightConfig

	// ReadTimeout and WriteTimeout bound the HTTP exchange.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Server is the HTTP front of the matching pipeline.
type Server struct {
	httpServer *http.Server
	scorer     matching.Scorer
	analyzer   TenderAnalyzer
	cfg        Config
	logger     *zap.Logger
}

// New wires the server. gatherer feeds GET /metrics; a nil gatherer
// falls back to the default registry, and a nil logger to a no-op one.
func New(cfg Config, scorer matching.Scorer, analyzer TenderAnalyzer, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = matching.DefaultBatchSize
	}
	if cfg.DefaultWeights == (domain.WeightConfig{}) {
		cfg.DefaultWeights = domain.DefaultWeights()
	}

	s := &Server{scorer: scorer, analyzer: analyzer, cfg: cfg, logger: logger}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /match", s.handleMatch)
	mux.HandleFunc("POST /match/multi", s.handleMatchMulti)
	mux.HandleFunc("POST /analyze-tender", s.handleAnalyzeTender)
	mux.HandleFunc("GET /healthz", s.handleHealthz)
	mux.Handle("GET /metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	s.httpServer = &http.Server{
		Addr:         cfg.Addr,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	return s
}

// Handler exposes the routing tree, mainly for tests.
func (s *Server) Handler() http.Handler { return s.httpServer.Handler }

// ListenAndServe blocks serving requests until the listener fails or
// Shutdown is called.
func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", zap.String("addr", s.cfg.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests until ctx expires.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("http server shutting down")
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
