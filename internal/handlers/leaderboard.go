package handlers

import (
	"errors"
	"net/http"

	"github.com/ecomate/carbon-server/internal/services"
	"go.uber.org/zap"
)

// LeaderboardHandler handles leaderboard endpoints
type LeaderboardHandler struct {
	leaderboard *services.LeaderboardService
	communities *services.CommunityService
	logger      *zap.SugaredLogger
}

// NewLeaderboardHandler creates a new leaderboard handler
func NewLeaderboardHandler(lb *services.LeaderboardService, communities *services.CommunityService, logger *zap.SugaredLogger) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboard: lb, communities: communities, logger: logger}
}

// Global handles GET /api/v1/leaderboard/global
func (h *LeaderboardHandler) Global(w http.ResponseWriter, r *http.Request) {
	board, err := h.leaderboard.Global(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to build global leaderboard", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":    board,
		"message": "Global leaderboard retrieved successfully",
	})
}

// Community handles GET /api/v1/leaderboard/{communityID}
func (h *LeaderboardHandler) Community(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	if _, err := h.communities.Get(r.Context(), communityID); errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch community")
		return
	}

	board, err := h.leaderboard.Community(r.Context(), communityID)
	if err != nil {
		h.logger.Errorw("Failed to build community leaderboard", "community", communityID, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch leaderboard")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"data":    board,
		"message": "Community leaderboard retrieved successfully",
	})
}
