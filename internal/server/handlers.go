package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"github.com/hyperjump/omoide/internal/analytics"
	"github.com/hyperjump/omoide/internal/models"
	"github.com/hyperjump/omoide/internal/storage"
)

func (s *Server) handleImport(w http.ResponseWriter, r *http.Request) {
	dir := s.config.Watch.Directory
	if dir == "" {
		s.respondError(w, http.StatusNotImplemented, "no drop directory configured")
		return
	}
	result, err := s.importer.ImportDir(r.Context(), dir)
	if err != nil {
		s.logger.Error("import failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	indexing := false
	if result.Imported > 0 {
		indexing = s.runner.Trigger()
	}
	s.respondJSON(w, http.StatusOK, map[string]interface{}{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"indexing": indexing,
	})
}

func (s *Server) handleListEntries(w http.ResponseWriter, r *http.Request) {
	entries, err := s.storage.ListEntries(r.Context())
	if err != nil {
		s.logger.Error("list entries failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, entries)
}

// keywordHit pairs an entry with its full-text relevance score.
type keywordHit struct {
	Entry *models.Entry `json:"entry"`
	Score float64       `json:"score"`
}

func (s *Server) handleKeywordSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	hits, err := s.keyword.Search(r.Context(), query, limit)
	if err != nil {
		s.logger.Error("keyword search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	out := make([]keywordHit, 0, len(hits))
	for _, hit := range hits {
		entry, err := s.storage.GetEntry(r.Context(), hit.ID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				// Index can lag behind deletes; skip dangling hits.
				continue
			}
			s.logger.Error("keyword search resolve failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		out = append(out, keywordHit{Entry: entry, Score: hit.Score})
	}
	s.respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSemanticSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		s.respondError(w, http.StatusBadRequest, "q is required")
		return
	}
	s.logger.Debug("semantic search", zap.String("query", query))
	results, err := s.retriever.Search(r.Context(), query, s.config.Retrieval.Search)
	if err != nil {
		s.logger.Error("semantic search failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if results == nil {
		results = []models.ScoredEntry{}
	}
	s.respondJSON(w, http.StatusOK, results)
}

type askRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	s.logger.Debug("twin ask", zap.String("question", req.Question))
	answer, err := s.twin.Ask(r.Context(), req.Question)
	if err != nil {
		s.logger.Error("twin ask failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, answer)
}

func (s *Server) handleIndexRun(w http.ResponseWriter, r *http.Request) {
	started := s.runner.Trigger()
	status := http.StatusAccepted
	if !started {
		status = http.StatusConflict
	}
	s.respondJSON(w, status, map[string]interface{}{
		"started": started,
		"status":  s.runner.Status(),
	})
}

func (s *Server) handleIndexStatus(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, s.runner.Status())
}

type coOccurrenceRequest struct {
	Entities []string `json:"entities"`
}

func (s *Server) handleCoOccurrence(w http.ResponseWriter, r *http.Request) {
	var req coOccurrenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sets, err := s.analytics.CoOccurrence(r.Context(), req.Entities)
	if err != nil {
		if errors.Is(err, analytics.ErrEntityCount) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("co-occurrence failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, sets)
}

func (s *Server) handleCommonConnections(w http.ResponseWriter, r *http.Request) {
	entity1 := r.URL.Query().Get("entity1")
	entity2 := r.URL.Query().Get("entity2")
	result, err := s.analytics.CommonConnections(r.Context(), entity1, entity2)
	if err != nil {
		if errors.Is(err, analytics.ErrMissingEntity) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.Error("common connections failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleEntitySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.analytics.EntitySummary(r.Context())
	if err != nil {
		s.logger.Error("entity summary failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

func (s *Server) handleSentiment(w http.ResponseWriter, r *http.Request) {
	points, err := s.analytics.SentimentTimeline(r.Context())
	if err != nil {
		s.logger.Error("sentiment timeline failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, points)
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entryCount, err := s.storage.CountEntries(ctx)
	if err != nil {
		s.logger.Error("status: count entries failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	embeddedCount, err := s.storage.CountEmbedded(ctx)
	if err != nil {
		s.logger.Error("status: count embedded failed", zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	resp := map[string]interface{}{
		"entries":  entryCount,
		"embedded": embeddedCount,
		"index":    s.runner.Status(),
		"config": map[string]interface{}{
			"embedding_dimensions": s.config.Embedding.Dimensions,
			"database_path":        s.config.Storage.DatabasePath,
			"keyword_index_path":   s.config.Storage.KeywordIndexPath,
		},
	}
	diskBytes, err := storage.DiskUsageBytes(
		s.config.Storage.DatabasePath,
		s.config.Storage.KeywordIndexPath,
	)
	if err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}
