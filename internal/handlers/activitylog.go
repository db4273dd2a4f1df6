package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecomate/carbon-server/internal/middleware"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/ecomate/carbon-server/internal/services"
	"go.uber.org/zap"
)

// ActivityLogHandler handles carbon activity log endpoints
type ActivityLogHandler struct {
	logs        *services.ActivityLogService
	goals       *services.GoalService
	communities *services.CommunityService
	logger      *zap.SugaredLogger
}

// NewActivityLogHandler creates a new activity log handler
func NewActivityLogHandler(logs *services.ActivityLogService, goals *services.GoalService, communities *services.CommunityService, logger *zap.SugaredLogger) *ActivityLogHandler {
	return &ActivityLogHandler{logs: logs, goals: goals, communities: communities, logger: logger}
}

// Create handles POST /api/v1/communities/{communityID}/activity-logs
func (h *ActivityLogHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	var req models.CreateActivityLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if _, err := h.communities.Get(r.Context(), communityID); errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch community")
		return
	}

	log, err := h.logs.Create(r.Context(), userID, communityID, &req)
	if err != nil {
		h.logger.Errorw("Failed to create activity log", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to log activity")
		return
	}

	// A log against a goal moves the goal's progress along with it.
	if req.GoalID != nil {
		if err := h.goals.AddProgress(r.Context(), *req.GoalID, req.CarbonSaved); err != nil {
			h.logger.Warnw("Failed to bump goal progress", "goal", *req.GoalID, "error", err)
		}
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"data": log})
}

// List handles GET /api/v1/communities/{communityID}/activity-logs
func (h *ActivityLogHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	logs, err := h.logs.ListByCommunity(r.Context(), communityID, 100)
	if err != nil {
		h.logger.Errorw("Failed to list activity logs", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch activity logs")
		return
	}
	if logs == nil {
		logs = []models.ActivityLog{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": logs})
}
