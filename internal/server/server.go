// Package server provides the HTTP API for Omoide.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/analytics"
	"github.com/hyperjump/omoide/internal/config"
	"github.com/hyperjump/omoide/internal/importer"
	"github.com/hyperjump/omoide/internal/indexer"
	"github.com/hyperjump/omoide/internal/keyword"
	"github.com/hyperjump/omoide/internal/retrieval"
	"github.com/hyperjump/omoide/internal/storage"
	"github.com/hyperjump/omoide/internal/twin"
)

// Server is the HTTP server for the Omoide API.
type Server struct {
	storage   storage.Storage
	retriever *retrieval.Retriever
	twin      *twin.Service
	runner    *indexer.Runner
	analytics *analytics.Service
	importer  *importer.Importer
	keyword   keyword.Index
	config    *config.Config
	logger    *zap.Logger
	server    *http.Server
}

// NewServer creates a server with the given dependencies.
func NewServer(
	store storage.Storage,
	retriever *retrieval.Retriever,
	twinSvc *twin.Service,
	runner *indexer.Runner,
	analyticsSvc *analytics.Service,
	imp *importer.Importer,
	kw keyword.Index,
	cfg *config.Config,
	logger *zap.Logger,
) *Server {
	return &Server{
		storage:   store,
		retriever: retriever,
		twin:      twinSvc,
		runner:    runner,
		analytics: analyticsSvc,
		importer:  imp,
		keyword:   kw,
		config:    cfg,
		logger:    logger,
	}
}

// Router builds the chi router for the API.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(120 * time.Second))
	r.Use(middleware.Compress(5))

	r.Post("/api/import", s.handleImport)
	r.Get("/api/entries", s.handleListEntries)
	r.Get("/api/entries/search", s.handleKeywordSearch)
	r.Get("/api/search", s.handleSemanticSearch)
	r.Post("/api/twin/ask", s.handleAsk)
	r.Post("/api/index/run", s.handleIndexRun)
	r.Get("/api/index/status", s.handleIndexStatus)
	r.Post("/api/analysis/co-occurrence", s.handleCoOccurrence)
	r.Get("/api/analysis/common-connections", s.handleCommonConnections)
	r.Get("/api/analysis/ner", s.handleEntitySummary)
	r.Get("/api/analysis/sentiment", s.handleSentiment)
	r.Get("/api/status", s.handleStatus)
	r.Get("/health", s.handleHealth)

	return r
}

// Start starts the HTTP server and blocks until it stops.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.server = &http.Server{
		Addr:    addr,
		Handler: s.Router(),
	}
	s.logger.Info("Starting server", zap.String("addr", addr))
	return s.server.ListenAndServe()
}

// Stop gracefully shuts down the server.
func (s *Server) Stop(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
