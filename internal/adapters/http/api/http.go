// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/goccy/go-json"

	service "github.com/okian/pathwise/internal/app"
	"github.com/okian/pathwise/internal/domain/compensation"
	"github.com/okian/pathwise/internal/domain/model"
	"github.com/okian/pathwise/internal/domain/simulation"
	"github.com/okian/pathwise/pkg/logger"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	RoleDependencies
	AssessDependencies
	SimulateDependencies
	ROIDependencies
}

// RoleDependencies reads the compensation dataset.
type RoleDependencies interface {
	Roles(ctx context.Context) ([]compensation.Profile, error)
	Lookup(ctx context.Context, role string) (compensation.Profile, bool, error)
}

// AssessDependencies classifies and projects a transition.
type AssessDependencies interface {
	Assess(ctx context.Context, in model.ProjectionInput) (service.Assessment, error)
}

// SimulateDependencies runs salary simulations.
type SimulateDependencies interface {
	Simulate(ctx context.Context, req service.SimulationRequest) (simulation.Result, error)
}

// ROIDependencies evaluates ROI and renders summaries.
type ROIDependencies interface {
	EvaluateROI(ctx context.Context, req service.ROIRequest) (service.ROIOutcome, error)
	Summary(ctx context.Context, req service.SummaryRequest) (service.Summary, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler   *HealthHandler
	statsHandler    *StatsHandler
	rolesHandler    *RolesHandler
	assessHandler   *AssessHandler
	simulateHandler *SimulateHandler
	roiHandler      *ROIHandler
	log             logger.Logger
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithServerLogger sets the logger used by the middleware.
func WithServerLogger(l logger.Logger) ServerOption {
	return func(s *Server) {
		if l != nil {
			s.log = l
		}
	}
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, opts ...ServerOption) *Server {
	s := &Server{
		healthHandler:   NewHealthHandler(),
		statsHandler:    NewStatsHandler(statsProvider),
		rolesHandler:    NewRolesHandler(deps),
		assessHandler:   NewAssessHandler(deps),
		simulateHandler: NewSimulateHandler(deps),
		roiHandler:      NewROIHandler(deps),
		log:             logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	wrap := func(h http.HandlerFunc, endpoint string) http.HandlerFunc {
		return RequestIDMiddleware(MetricsMiddleware(h, endpoint), s.log)
	}

	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", wrap(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", wrap(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/roles", wrap(s.rolesHandler.HandleListRoles, "roles"))
	mux.HandleFunc("/roles/", wrap(s.rolesHandler.HandleGetRole, "role"))
	mux.HandleFunc("/assess", wrap(s.assessHandler.HandleAssess, "assess"))
	mux.HandleFunc("/simulate", wrap(s.simulateHandler.HandleSimulate, "simulate"))
	mux.HandleFunc("/roi", wrap(s.roiHandler.HandleROI, "roi"))
	mux.HandleFunc("/summary", wrap(s.roiHandler.HandleSummary, "summary"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeNotFound answers requests for unsupported methods on known routes.
func writeNotFound(w http.ResponseWriter, op string) {
	writeError(w, http.StatusNotFound, "not_found", NewKind(op, ErrNotFound))
}

// decodeJSON reads a single JSON object from the request body.
func decodeJSON(r *http.Request, v any) error {
	return json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(v)
}

// writeServiceError maps engine errors to status codes.
func writeServiceError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, model.ErrNonPositiveGain):
		writeError(w, http.StatusUnprocessableEntity, "non_positive_gain", Wrap(op, err))
	case errors.Is(err, model.ErrIncompleteInput):
		writeError(w, http.StatusBadRequest, "incomplete_input", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, model.ErrInvalidSimulation):
		writeError(w, http.StatusBadRequest, "invalid_simulation", WrapKind(op, ErrBadRequest, err))
	case errors.Is(err, service.ErrNotStarted):
		writeError(w, http.StatusServiceUnavailable, "unavailable", WrapKind(op, ErrUnavailable, err))
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
	}
}
