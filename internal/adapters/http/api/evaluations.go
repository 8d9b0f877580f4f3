package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/domain/model"
	"github.com/sportsreelstechnical/sports-reels-sub001/pkg/metrics"
)

// EvaluationsHandler handles async evaluation requests.
type EvaluationsHandler struct {
	deps Dependencies
}

// NewEvaluationsHandler creates a new evaluations handler.
func NewEvaluationsHandler(deps Dependencies) *EvaluationsHandler {
	return &EvaluationsHandler{deps: deps}
}

// evaluationRequest mirrors the wire schema for POST /evaluations.
type evaluationRequest struct {
	RequestID string `json:"request_id"`
	PlayerID  string `json:"player_id"`
	TS        string `json:"ts,omitempty"`
}

func (e evaluationRequest) validate() error {
	switch {
	case strings.TrimSpace(e.RequestID) == "":
		return errors.New("missing request_id")
	case strings.TrimSpace(e.PlayerID) == "":
		return errors.New("missing player_id")
	}
	if e.TS != "" {
		if _, err := time.Parse(time.RFC3339, e.TS); err != nil {
			return errors.New("invalid ts; must be RFC3339")
		}
	}
	return nil
}

// HandlePostEvaluation handles POST /evaluations requests.
func (h *EvaluationsHandler) HandlePostEvaluation(w http.ResponseWriter, r *http.Request) {
	const op = "api.post_evaluation"
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req evaluationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", WrapKind(op, ErrBadRequest, err))
		return
	}

	// Idempotency check: mark as seen first.
	if h.deps.SeenAndRecord(r.Context(), req.RequestID) {
		metrics.RecordEvaluationDuplicate()
		writeJSON(w, http.StatusOK, ackResponse{Status: "duplicate", Duplicate: true})
		return
	}

	requestedAt := time.Now().UTC()
	if req.TS != "" {
		requestedAt, _ = time.Parse(time.RFC3339, req.TS)
	}

	evalReq := model.EvaluationRequest{
		RequestID:   req.RequestID,
		PlayerID:    req.PlayerID,
		RequestedAt: requestedAt,
	}
	if ok := h.deps.EnqueueEvaluation(r.Context(), evalReq); !ok {
		// Roll back the seen mark so the client can retry.
		h.deps.Unrecord(r.Context(), req.RequestID)
		writeError(w, http.StatusTooManyRequests, "backpressure", NewKind(op, ErrBackpressure))
		return
	}
	writeJSON(w, http.StatusAccepted, ackResponse{Status: "accepted", Duplicate: false})
}
