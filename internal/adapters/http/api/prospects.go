package api

import (
	"context"
	"net/http"
	"strconv"

	"github.com/sportsreelstechnical/sports-reels-sub001/internal/adapters/repository"
)

// ProspectsDependencies defines the interface for prospects queries.
type ProspectsDependencies interface {
	TopProspects(ctx context.Context, n int) ([]repository.ProspectEntry, error)
}

// ProspectsHandler handles prospects ranking requests.
type ProspectsHandler struct {
	deps     ProspectsDependencies
	maxLimit int
}

// NewProspectsHandler creates a new prospects handler.
func NewProspectsHandler(deps ProspectsDependencies, maxLimit int) *ProspectsHandler {
	return &ProspectsHandler{
		deps:     deps,
		maxLimit: maxLimit,
	}
}

// HandleGetProspects handles GET /prospects?limit=N requests.
func (h *ProspectsHandler) HandleGetProspects(w http.ResponseWriter, r *http.Request) {
	const op = "api.get_prospects"
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	limitStr := r.URL.Query().Get("limit")
	n, err := strconv.Atoi(limitStr)
	if err != nil || n < 1 {
		writeError(w, http.StatusBadRequest, "bad_request", NewKind(op, ErrBadRequest))
		return
	}
	if n > h.maxLimit {
		writeError(w, http.StatusBadRequest, "limit_exceeded", NewKind(op, ErrBadRequest))
		return
	}
	entries, err := h.deps.TopProspects(r.Context(), n)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "internal_error", Wrap(op, err))
		return
	}
	if entries == nil {
		entries = []repository.ProspectEntry{}
	}
	writeJSON(w, http.StatusOK, entries)
}
