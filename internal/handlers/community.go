// Package handlers contains HTTP request handlers for the EcoMate API.
// Handlers parse requests, call services, and return JSON responses.
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecomate/carbon-server/internal/middleware"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/ecomate/carbon-server/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommunityHandler handles community HTTP endpoints
type CommunityHandler struct {
	svc    *services.CommunityService
	logger *zap.SugaredLogger
}

// NewCommunityHandler creates a new community handler
func NewCommunityHandler(svc *services.CommunityService, logger *zap.SugaredLogger) *CommunityHandler {
	return &CommunityHandler{svc: svc, logger: logger}
}

// List handles GET /api/v1/communities
func (h *CommunityHandler) List(w http.ResponseWriter, r *http.Request) {
	communities, err := h.svc.List(r.Context())
	if err != nil {
		h.logger.Errorw("Failed to list communities", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to list communities")
		return
	}
	if communities == nil {
		communities = []models.Community{}
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"data": communities})
}

// Create handles POST /api/v1/communities
func (h *CommunityHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req models.CreateCommunityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	community, err := h.svc.Create(r.Context(), userID, &req)
	if err != nil {
		h.logger.Errorw("Failed to create community", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create community")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"data": community})
}

// Get handles GET /api/v1/communities/{communityID}
func (h *CommunityHandler) Get(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	community, err := h.svc.Get(r.Context(), communityID)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to fetch community", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch community")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": community})
}

// Join handles POST /api/v1/communities/{communityID}/join
func (h *CommunityHandler) Join(w http.ResponseWriter, r *http.Request) {
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

	if _, err := h.svc.Get(r.Context(), communityID); errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "Community not found")
		return
	} else if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch community")
		return
	}

	if err := h.svc.Join(r.Context(), communityID, userID); err != nil {
		h.logger.Errorw("Failed to join community", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to join community")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "joined"})
}

// communityIDParam parses the {communityID} route parameter.
func communityIDParam(r *http.Request) (uuid.UUID, error) {
	return uuid.Parse(chi.URLParam(r, "communityID"))
}

// Helper: respond with JSON
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Helper: respond with error
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
