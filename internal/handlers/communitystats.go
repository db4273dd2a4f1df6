package handlers

import (
	"errors"
	"net/http"

	"github.com/ecomate/carbon-server/internal/services"
	"go.uber.org/zap"
)

// CommunityStatsHandler handles the community analytics endpoint
type CommunityStatsHandler struct {
	stats  *services.CommunityStatsService
	logger *zap.SugaredLogger
}

// NewCommunityStatsHandler creates a new community stats handler
func NewCommunityStatsHandler(stats *services.CommunityStatsService, logger *zap.SugaredLogger) *CommunityStatsHandler {
	return &CommunityStatsHandler{stats: stats, logger: logger}
}

// Aggregate handles GET /api/v1/communities/{communityID}/analytics
func (h *CommunityStatsHandler) Aggregate(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	result, err := h.stats.Aggregate(r.Context(), communityID)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to aggregate community analytics", "community", communityID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch analytics")
		return
	}

	respondJSON(w, http.StatusOK, result)
}
