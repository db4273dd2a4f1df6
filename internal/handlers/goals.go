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

// GoalHandler handles community goal endpoints
type GoalHandler struct {
	goals       *services.GoalService
	communities *services.CommunityService
	logger      *zap.SugaredLogger
}

// NewGoalHandler creates a new goal handler
func NewGoalHandler(goals *services.GoalService, communities *services.CommunityService, logger *zap.SugaredLogger) *GoalHandler {
	return &GoalHandler{goals: goals, communities: communities, logger: logger}
}

// List handles GET /api/v1/communities/{communityID}/goals
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	goals, err := h.goals.ListByCommunity(r.Context(), communityID)
	if err != nil {
		h.logger.Errorw("Failed to list goals", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list goals")
		return
	}
	if goals == nil {
		goals = []models.CommunityGoal{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": goals})
}

// Create handles POST /api/v1/communities/{communityID}/goals
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreateGoalRequest
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

	goal, err := h.goals.Create(r.Context(), communityID, userID, &req)
	if err != nil {
		h.logger.Errorw("Failed to create goal", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create goal")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"data": goal})
}
