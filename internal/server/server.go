// internal/server/server.go

// Package server is the HTTP front for the intake pipeline. It accepts
// both the browser form (multipart) and JSON submissions and exposes
// the role catalog, protocol lookup, health and metrics endpoints.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"inscricao-saude/internal/catalog"
	"inscricao-saude/internal/common/config"
	"inscricao-saude/internal/common/database"
	"inscricao-saude/internal/common/logger"
	"inscricao-saude/internal/intake"
	"inscricao-saude/internal/pipeline"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	httpServer *http.Server
	pipeline   *pipeline.Pipeline
	catalog    *catalog.Catalog
	redis      *database.RedisClient
	logger     logger.Logger
	maxUpload  int64
}

func New(cfg config.HTTPConfig, p *pipeline.Pipeline, cat *catalog.Catalog, redisClient *database.RedisClient, log logger.Logger) *Server {
	s := &Server{
		pipeline:  p,
		catalog:   cat,
		redis:     redisClient,
		logger:    log.WithFields(map[string]interface{}{"component": "server"}),
		maxUpload: cfg.MaxUploadBytes,
	}

	s.httpServer = &http.Server{
		Addr:         cfg.Address,
		Handler:      s.Router(),
		ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
		WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
	}

	return s
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Post("/inscricoes", s.handleCreateEnrollment)
	r.Get("/cargos", s.handleListRoles)
	r.Get("/protocolos/{protocolo}", s.handleProtocolLookup)
	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	return r
}

func (s *Server) ListenAndServe() error {
	s.logger.Info("http server listening", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) handleCreateEnrollment(w http.ResponseWriter, r *http.Request) {
	sub, err := s.decodeSubmission(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.pipeline.Process(r.Context(), sub)
	if err != nil {
		s.logger.WithError(err).Error("pipeline failed", nil)
		writeError(w, http.StatusInternalServerError, "erro interno ao processar a inscrição")
		return
	}

	switch {
	case !result.Accepted && len(result.Errors) > 0:
		writeJSON(w, http.StatusUnprocessableEntity, map[string]interface{}{
			"aceita": false,
			"erros":  result.Errors,
		})
	case !result.Accepted:
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{
			"aceita": false,
			"avisos": result.Warnings,
		})
	default:
		writeJSON(w, http.StatusCreated, map[string]interface{}{
			"aceita":     true,
			"protocolo":  result.Protocol,
			"duplicada":  result.Duplicate,
			"salva":      result.Saved,
			"documentos": result.StoredDocuments,
			"avisos":     result.Warnings,
		})
	}
}

func (s *Server) decodeSubmission(r *http.Request) (*intake.Submission, error) {
	contentType := r.Header.Get("Content-Type")
	if strings.HasPrefix(contentType, "application/json") {
		return decodeJSON(r)
	}
	return decodeMultipart(r, s.maxUpload)
}

func (s *Server) handleListRoles(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"cargos": s.catalog.Roles(),
	})
}

// handleProtocolLookup answers from the protocol cache only; a miss is
// indistinguishable from an expired entry and reads as not found.
func (s *Server) handleProtocolLookup(w http.ResponseWriter, r *http.Request) {
	if s.redis == nil {
		writeError(w, http.StatusServiceUnavailable, "consulta de protocolo indisponível")
		return
	}

	protocol := chi.URLParam(r, "protocolo")
	raw, err := s.redis.Get(r.Context(), "protocolo:"+protocol)
	if errors.Is(err, redis.Nil) {
		writeError(w, http.StatusNotFound, "protocolo não encontrado")
		return
	}
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, "consulta de protocolo indisponível")
		return
	}

	var record map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &record); err != nil {
		writeError(w, http.StatusInternalServerError, "registro de protocolo inválido")
		return
	}
	record["protocolo"] = protocol

	writeJSON(w, http.StatusOK, record)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
