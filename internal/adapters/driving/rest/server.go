package rest

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lexatlas-labs/clauseline-cli/internal/core/ports/driving"
	"github.com/lexatlas-labs/clauseline-cli/internal/logger"
)

// DefaultAddr is the listen address when none is configured.
const DefaultAddr = ":8000"

// defaultMaxUploadBytes bounds multipart parsing when the analysis
// settings do not supply a ceiling.
const defaultMaxUploadBytes = 10 << 20

// Config wires the HTTP server.
type Config struct {
	// Addr is the listen address.
	Addr string

	// MaxUploadBytes bounds multipart upload parsing.
	MaxUploadBytes int64

	// Analysis drives the document pipeline. Required.
	Analysis driving.AnalysisService

	// RAG answers grounded questions. Optional; RAG endpoints return
	// 503 without it.
	RAG driving.RAGService

	// Knowledge manages the seeded reference corpus. Optional.
	Knowledge driving.KnowledgeService
}

// Server is the HTTP driving adapter.
type Server struct {
	cfg    Config
	router *mux.Router
	http   *http.Server
}

// NewServer creates the HTTP server with all routes registered.
func NewServer(cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = defaultMaxUploadBytes
	}

	s := &Server{cfg: cfg, router: mux.NewRouter()}
	s.routes()
	s.http = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// routes registers all endpoints.
func (s *Server) routes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/documents/analyze", s.handleAnalyze).Methods(http.MethodPost)
	api.HandleFunc("/documents", s.handleListDocuments).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/status", s.handleStatus).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/timeline", s.handleTimeline).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/clauses", s.handleClauses).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/clauses/{clauseID}/details", s.handleClauseDetails).Methods(http.MethodGet)
	api.HandleFunc("/documents/{id}/cancel", s.handleCancel).Methods(http.MethodPost)
	api.HandleFunc("/documents/{id}", s.handleDelete).Methods(http.MethodDelete)

	api.HandleFunc("/rag/query", s.handleRAGQuery).Methods(http.MethodPost)
	api.HandleFunc("/admin/initialize-knowledge-base", s.handleInitKnowledgeBase).Methods(http.MethodPost)

	s.router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	s.router.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
}

// Router returns the handler, used directly in tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	logger.Info("http server listening on %s", s.cfg.Addr)
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
