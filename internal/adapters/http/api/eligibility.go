package api

import (
	"net/http"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/scoring"
)

// handleEligibility serves GET /players/{id}/eligibility: a synchronous
// evaluation over the player's current bundle.
func (h *PlayersHandler) handleEligibility(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.get_eligibility"
	result, err := h.deps.Eligibility(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// handleVisaEligibility serves GET /players/{id}/eligibility/{visa}.
func (h *PlayersHandler) handleVisaEligibility(w http.ResponseWriter, r *http.Request, playerID, visa string) {
	const op = "api.get_visa_eligibility"
	result, err := h.deps.Eligibility(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	vs, ok := result.ByVisa(scoring.Visa(visa))
	if !ok {
		writeError(w, http.StatusBadRequest, "unknown_visa", NewKind(op, ErrBadRequest))
		return
	}
	writeJSON(w, http.StatusOK, vs)
}

// handleReport serves GET /players/{id}/report: the latest stored
// snapshot, not a fresh evaluation.
func (h *PlayersHandler) handleReport(w http.ResponseWriter, r *http.Request, playerID string) {
	const op = "api.get_report"
	snap, err := h.deps.Report(r.Context(), playerID)
	if err != nil {
		if isNotFound(err) {
			writeError(w, http.StatusNotFound, "not_found", err)
			return
		}
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	writeJSON(w, http.StatusOK, snap)
}
