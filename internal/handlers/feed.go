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

// FeedHandler handles community feed endpoints
type FeedHandler struct {
	feed        *services.FeedService
	communities *services.CommunityService
	logger      *zap.SugaredLogger
}

// NewFeedHandler creates a new feed handler
func NewFeedHandler(feed *services.FeedService, communities *services.CommunityService, logger *zap.SugaredLogger) *FeedHandler {
	return &FeedHandler{feed: feed, communities: communities, logger: logger}
}

// Create handles POST /api/v1/communities/{communityID}/feed
func (h *FeedHandler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req models.CreatePostRequest
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

	post, err := h.feed.CreatePost(r.Context(), userID, communityID, &req)
	if err != nil {
		h.logger.Errorw("Failed to create post", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create post")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"data": post})
}

// List handles GET /api/v1/communities/{communityID}/feed
func (h *FeedHandler) List(w http.ResponseWriter, r *http.Request) {
	communityID, err := communityIDParam(r)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid community ID")
		return
	}

	posts, err := h.feed.ListByCommunity(r.Context(), communityID, 50)
	if err != nil {
		h.logger.Errorw("Failed to list posts", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to fetch feed")
		return
	}
	if posts == nil {
		posts = []models.ActivityPost{}
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": posts})
}
