// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/dedupe"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	dedupe.Deduper

	// RegisterPlayer stores or replaces a player bundle.
	RegisterPlayer(ctx context.Context, b model.Bundle) error

	// Eligibility computes the full eligibility result synchronously.
	Eligibility(ctx context.Context, playerID string) (scoring.Result, error)

	// Report returns the latest stored snapshot for a player.
	Report(ctx context.Context, playerID string) (repository.Snapshot, error)

	// EnqueueEvaluation pushes a request for async processing.
	// Returns false on backpressure.
	EnqueueEvaluation(ctx context.Context, r model.EvaluationRequest) bool

	// TopProspects exposes the prospects ranking.
	TopProspects(ctx context.Context, n int) ([]repository.ProspectEntry, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	evaluationsHandler *EvaluationsHandler
	prospectsHandler   *ProspectsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider, maxProspectsLimit int) *Server {
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(statsProvider),
		playersHandler:     NewPlayersHandler(deps),
		evaluationsHandler: NewEvaluationsHandler(deps),
		prospectsHandler:   NewProspectsHandler(deps, maxProspectsLimit),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/players", MetricsMiddleware(s.playersHandler.HandlePostPlayer, "players"))
	mux.HandleFunc("/players/", MetricsMiddleware(s.playersHandler.HandlePlayerSubresource, "players"))
	mux.HandleFunc("/evaluations", MetricsMiddleware(s.evaluationsHandler.HandlePostEvaluation, "evaluations"))
	mux.HandleFunc("/prospects", MetricsMiddleware(s.prospectsHandler.HandleGetProspects, "prospects"))
}

type ackResponse struct {
	Status    string `json:"status"`
	Duplicate bool   `json:"duplicate"`
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

// isNotFound translates upstream not-found errors to 404.
func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, repository.ErrNotFound) {
		return true
	}
	return strings.Contains(strings.ToLower(err.Error()), "not found")
}
