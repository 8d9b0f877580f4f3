// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
)

// PlayersHandler handles player registration and per-player reads.
type PlayersHandler struct {
	deps Dependencies
}

// NewPlayersHandler creates a new players handler.
func NewPlayersHandler(deps Dependencies) *PlayersHandler {
	return &PlayersHandler{deps: deps}
}

// playerRequest mirrors the wire schema for POST /players: the player
// profile plus every raw data source the calculators read.
type playerRequest struct {
	Player        model.Player                `json:"player"`
	Metrics       []model.SeasonMetrics       `json:"metrics,omitempty"`
	Videos        []model.Video               `json:"videos,omitempty"`
	Insights      []model.VideoInsight        `json:"insights,omitempty"`
	International []model.InternationalRecord `json:"international,omitempty"`
	Letters       []model.InvitationLetter    `json:"letters,omitempty"`
	LeagueBand    int                         `json:"league_band"`
}

func (p playerRequest) validate() error {
	switch {
	case strings.TrimSpace(p.Player.ID) == "":
		return errors.New("missing player.id")
	case strings.TrimSpace(p.Player.FullName) == "":
		return errors.New("missing player.full_name")
	case p.LeagueBand < 0:
		return errors.New("league_band must not be negative")
	}
	return nil
}

func (p playerRequest) bundle() model.Bundle {
	return model.Bundle{
		Player:        p.Player,
		Metrics:       p.Metrics,
		Videos:        p.Videos,
		Insights:      p.Insights,
		International: p.International,
		Letters:       p.Letters,
		LeagueBand:    p.LeagueBand,
	}
}

// HandlePostPlayer handles POST /players requests.
func (h *PlayersHandler) HandlePostPlayer(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_player"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req playerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := h.deps.RegisterPlayer(r.Context(), req.bundle()); err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{
		"status":    "registered",
		"player_id": req.Player.ID,
	})
}

// HandlePlayerSubresource routes GET /players/{id}/eligibility,
// GET /players/{id}/eligibility/{visa} and GET /players/{id}/report.
func (h *PlayersHandler) HandlePlayerSubresource(w http.ResponseWriter, r *http.Request) {
	const op = "api.player_subresource"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	rest := strings.TrimPrefix(r.URL.Path, "/players/")
	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	playerID := parts[0]

	switch {
	case len(parts) == 2 && parts[1] == "eligibility":
		h.handleEligibility(w, r, playerID)
	case len(parts) == 3 && parts[1] == "eligibility" && parts[2] != "":
		h.handleVisaEligibility(w, r, playerID, parts[2])
	case len(parts) == 2 && parts[1] == "report":
		h.handleReport(w, r, playerID)
	default:
		http.NotFound(w, r)
	}
}
