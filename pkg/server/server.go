// Package server exposes the advisor over a small JSON HTTP API.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jingkaihe/skill-advisor/pkg/advisor"
	"github.com/jingkaihe/skill-advisor/pkg/logger"
	"github.com/jingkaihe/skill-advisor/pkg/presenter"
	"github.com/jingkaihe/skill-advisor/pkg/version"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

const requestIDHeader = "X-Request-ID"

// Server represents the HTTP API server
type Server struct {
	router  *mux.Router
	advisor *advisor.Advisor
	config  *Config
	server  *http.Server
}

// Config holds the configuration for the HTTP server
type Config struct {
	Host string
	Port int
}

// Validate validates the server configuration
func (c *Config) Validate() error {
	if c.Host == "" {
		return errors.New("host cannot be empty")
	}
	if c.Port < 1 || c.Port > 65535 {
		return errors.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}
	return nil
}

// New creates a new API server over adv
func New(adv *advisor.Advisor, config *Config) (*Server, error) {
	if adv == nil {
		return nil, errors.New("advisor is required")
	}
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid server configuration")
	}

	s := &Server{
		router:  mux.NewRouter(),
		advisor: adv,
		config:  config,
	}
	s.setupRoutes()

	return s, nil
}

// Handler returns the routed handler, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/recommendations", s.handleRecommendations).Methods("POST")
	api.HandleFunc("/skills", s.handleListSkills).Methods("GET")
	api.HandleFunc("/gate", s.handleGate).Methods("POST")

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	s.router.Use(s.requestIDMiddleware)
	s.router.Use(s.loggingMiddleware)
}

// requestIDMiddleware assigns each request an id and a logger carrying it
func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)

		ctx := logger.WithFields(r.Context(), logrus.Fields{"request_id": id})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(rw, r)

		logger.G(r.Context()).WithFields(map[string]any{
			"method":      r.Method,
			"path":        r.URL.Path,
			"status":      rw.statusCode,
			"duration":    time.Since(start),
			"remote_addr": r.RemoteAddr,
		}).Info("HTTP request")
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// RecommendationRequest is the body of POST /api/recommendations
type RecommendationRequest struct {
	Request              string   `json:"request"`
	ConfidenceThreshold  *float64 `json:"confidence_threshold,omitempty"`
	UncertaintyThreshold *float64 `json:"uncertainty_threshold,omitempty"`
	Limit                int      `json:"limit,omitempty"`
}

// RecommendationResponse is the body returned by POST /api/recommendations
type RecommendationResponse struct {
	RequestID       string                   `json:"request_id"`
	Recommendations []advisor.Recommendation `json:"recommendations"`
	Routed          string                   `json:"routed,omitempty"`
}

// GateRequest is the body of POST /api/gate
type GateRequest struct {
	Confidence           float64  `json:"confidence"`
	Uncertainty          float64  `json:"uncertainty"`
	ConfidenceThreshold  *float64 `json:"confidence_threshold,omitempty"`
	UncertaintyThreshold *float64 `json:"uncertainty_threshold,omitempty"`
}

// GateResponse is the body returned by POST /api/gate
type GateResponse struct {
	Passes bool                     `json:"passes"`
	Level  advisor.UncertaintyLevel `json:"level"`
}

// SkillEntry is one element of GET /api/skills
type SkillEntry struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Weight      float64 `json:"weight"`
	Directory   string  `json:"directory,omitempty"`
}

// handleRecommendations handles POST /api/recommendations
func (s *Server) handleRecommendations(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req RecommendationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if req.Limit < 0 {
		s.writeErrorResponse(ctx, w, http.StatusBadRequest, "limit must not be negative", nil)
		return
	}

	thresholds := overrideThresholds(s.advisor.Thresholds(), req.ConfidenceThreshold, req.UncertaintyThreshold)
	recs, err := s.advisor.AnalyzeWith(ctx, req.Request, thresholds)
	if err != nil {
		s.writeErrorResponse(ctx, w, http.StatusInternalServerError, "failed to analyze request", err)
		return
	}
	if req.Limit > 0 && len(recs) > req.Limit {
		recs = recs[:req.Limit]
	}

	resp := RecommendationResponse{
		RequestID:       w.Header().Get(requestIDHeader),
		Recommendations: recs,
	}
	if len(recs) > 0 && recs[0].PassesThreshold {
		resp.Routed = recs[0].Skill
	}

	s.writeJSONResponse(ctx, w, resp)
}

// handleListSkills handles GET /api/skills
func (s *Server) handleListSkills(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	catalog, err := s.advisor.Catalog(ctx)
	if err != nil {
		s.writeErrorResponse(ctx, w, http.StatusInternalServerError, "failed to list skills", err)
		return
	}

	entries := make([]SkillEntry, 0, len(catalog))
	for _, skill := range catalog {
		entries = append(entries, SkillEntry{
			Name:        skill.Name,
			Description: skill.Description,
			Weight:      skill.Weight,
			Directory:   skill.Directory,
		})
	}

	s.writeJSONResponse(ctx, w, map[string]any{"skills": entries})
}

// handleGate handles POST /api/gate
func (s *Server) handleGate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req GateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(ctx, w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	thresholds := overrideThresholds(s.advisor.Thresholds(), req.ConfidenceThreshold, req.UncertaintyThreshold)
	s.writeJSONResponse(ctx, w, GateResponse{
		Passes: thresholds.Passes(req.Confidence, req.Uncertainty),
		Level:  advisor.LevelOf(req.Uncertainty),
	})
}

// handleHealth handles GET /healthz
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSONResponse(r.Context(), w, map[string]string{
		"status":  "ok",
		"version": version.Get().Version,
	})
}

func overrideThresholds(base advisor.Thresholds, confidence, uncertainty *float64) advisor.Thresholds {
	if confidence != nil {
		base.Confidence = *confidence
	}
	if uncertainty != nil {
		base.Uncertainty = *uncertainty
	}
	return base
}

// writeJSONResponse writes a JSON response
func (s *Server) writeJSONResponse(ctx context.Context, w http.ResponseWriter, data any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.G(ctx).WithError(err).Error("failed to encode JSON response")
		http.Error(w, "internal server error", http.StatusInternalServerError)
	}
}

// writeErrorResponse writes an error response
func (s *Server) writeErrorResponse(ctx context.Context, w http.ResponseWriter, statusCode int, message string, err error) {
	if err != nil {
		logger.G(ctx).WithError(err).Warn(message)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := map[string]any{
		"error":   message,
		"status":  statusCode,
		"success": false,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		logger.G(ctx).WithError(err).Error("failed to encode error response")
	}
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	address := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)

	s.server = &http.Server{
		Addr:              address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	presenter.Info(fmt.Sprintf("Starting skill advisor API on http://%s", address))

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	return s.server.Shutdown(shutdownCtx)
}

// Stop stops the server immediately
func (s *Server) Stop() error {
	if s.server != nil {
		return s.server.Close()
	}
	return nil
}
