package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/astromedai/mission-risk-service/internal/domain"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Assessor runs risk assessments for the HTTP layer.
type Assessor interface {
	AssessMission(ctx context.Context, mission domain.MissionParameters) (domain.RiskResult, error)
	AssessEvents(ctx context.Context, mission domain.MissionParameters, events []domain.SpaceWeatherEvent) (domain.RiskResult, error)
}

// ReadinessChecker reports whether the service is ready to serve traffic.
type ReadinessChecker interface {
	CheckReadiness(ctx context.Context) error
}

// Server exposes the assessment API plus health, readiness, and metrics
// endpoints.
type Server struct {
	httpServer *http.Server
	assessor   Assessor
	logger     *slog.Logger
}

// NewServer creates an HTTP server with the assessment and operational routes.
func NewServer(addr string, assessor Assessor, ready ReadinessChecker, logger *slog.Logger) *Server {
	mux := http.NewServeMux()

	s := &Server{
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      mux,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		assessor: assessor,
		logger:   logger,
	}

	mux.HandleFunc("POST /api/v1/assess", s.handleAssess)
	mux.HandleFunc("GET /api/v1/assess", s.handleAssessQuery)
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", handleReady(ready))
	mux.Handle("GET /metrics", promhttp.Handler())

	return s
}

// Start begins listening. Returns http.ErrServerClosed on graceful shutdown.
func (s *Server) Start() error {
	s.logger.Info("http server starting", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully drains connections within the given context deadline.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

// ServeHTTP delegates to the underlying handler, useful for testing.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.httpServer.Handler.ServeHTTP(w, r)
}

// assessRequest is the POST body. Events are optional; when present they are
// assessed directly instead of consulting the configured feed.
type assessRequest struct {
	StartDate      string                     `json:"start_date"`
	EndDate        string                     `json:"end_date"`
	OrbitType      string                     `json:"orbit_type"`
	ShieldingLevel string                     `json:"shielding_level"`
	Events         []domain.SpaceWeatherEvent `json:"events,omitempty"`
}

func (s *Server) handleAssess(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)

	var req assessRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}

	mission, err := buildMission(req.StartDate, req.EndDate, req.OrbitType, req.ShieldingLevel)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	var result domain.RiskResult
	if req.Events != nil {
		result, err = s.assessor.AssessEvents(r.Context(), mission, req.Events)
	} else {
		result, err = s.assessor.AssessMission(r.Context(), mission)
	}
	if err != nil {
		s.writeAssessError(w, logger, err)
		return
	}

	logger.Info("assessment served", "category", result.Category, "percentage", result.Percentage)
	writeJSON(w, http.StatusOK, result)
}

// handleAssessQuery serves the query-parameter form of the assessment API,
// always against the configured feed.
func (s *Server) handleAssessQuery(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.NewString()
	logger := s.logger.With("request_id", requestID)

	q := r.URL.Query()
	mission, err := buildMission(q.Get("start_date"), q.Get("end_date"), q.Get("orbit_type"), q.Get("shielding_level"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.assessor.AssessMission(r.Context(), mission)
	if err != nil {
		s.writeAssessError(w, logger, err)
		return
	}

	logger.Info("assessment served", "category", result.Category, "percentage", result.Percentage)
	writeJSON(w, http.StatusOK, result)
}

// writeAssessError maps assessment failures to HTTP statuses: invalid mission
// parameters are the caller's fault, feed failures are upstream, everything
// else is ours.
func (s *Server) writeAssessError(w http.ResponseWriter, logger *slog.Logger, err error) {
	var invalid *domain.InvalidMissionError
	if errors.As(err, &invalid) {
		writeError(w, http.StatusBadRequest, invalid.Error())
		return
	}
	if strings.Contains(err.Error(), "fetch events") {
		logger.Error("feed fetch failed", "error", err)
		writeError(w, http.StatusBadGateway, "space weather feed unavailable")
		return
	}
	logger.Error("assessment failed", "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

// buildMission parses and validates the request fields into typed mission
// parameters.
func buildMission(start, end, orbit, shielding string) (domain.MissionParameters, error) {
	startDate, err := parseDate("start_date", start)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	endDate, err := parseDate("end_date", end)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	orbitType, err := domain.ParseOrbitType(orbit)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	shieldingLevel, err := domain.ParseShieldingLevel(shielding)
	if err != nil {
		return domain.MissionParameters{}, err
	}
	return domain.MissionParameters{
		StartDate: startDate,
		EndDate:   endDate,
		Orbit:     orbitType,
		Shielding: shieldingLevel,
	}, nil
}

// parseDate accepts a calendar date or a full RFC 3339 timestamp. A bare date
// means midnight UTC.
func parseDate(field, value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, fmt.Errorf("%s is required (YYYY-MM-DD or RFC 3339)", field)
	}
	if t, err := time.Parse("2006-01-02", value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("invalid %s %q (expected YYYY-MM-DD or RFC 3339)", field, value)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func handleReady(checker ReadinessChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := checker.CheckReadiness(ctx); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{
				"status": "not ready",
				"error":  err.Error(),
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v) //nolint:errcheck // best-effort response
}
