package handlers

import (
	"context"
	"net/http"

	"github.com/DivyanshSaharan/ContestTrack/internal/cache"
)

// ImportRunner triggers a contest import outside the hourly schedule.
type ImportRunner interface {
	RunNow(ctx context.Context) error
}

type AdminHandler struct {
	importer ImportRunner
	cache    *cache.Cache
}

func NewAdminHandler(importer ImportRunner, contestCache *cache.Cache) *AdminHandler {
	return &AdminHandler{
		importer: importer,
		cache:    contestCache,
	}
}

// Refresh runs the aggregator and importer immediately and invalidates the
// cached upcoming-contest listing.
func (h *AdminHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.importer.RunNow(r.Context()); err != nil {
		respondError(w, http.StatusBadGateway, "Contest import failed")
		return
	}

	h.cache.Invalidate(r.Context(), upcomingCacheKey)

	respondJSON(w, http.StatusOK, map[string]string{"status": "refreshed"})
}
