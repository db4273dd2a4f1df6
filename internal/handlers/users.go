package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/ecomate/carbon-server/internal/models"
	"github.com/ecomate/carbon-server/internal/services"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// UserHandler handles account endpoints
type UserHandler struct {
	svc    *services.UserService
	logger *zap.SugaredLogger
}

// NewUserHandler creates a new user handler
func NewUserHandler(svc *services.UserService, logger *zap.SugaredLogger) *UserHandler {
	return &UserHandler{svc: svc, logger: logger}
}

// SignUp handles POST /api/v1/users
func (h *UserHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.svc.SignUp(r.Context(), &req)
	if errors.Is(err, services.ErrEmailTaken) {
		respondError(w, http.StatusConflict, "Email already registered")
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to sign up user", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create account")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{"data": user})
}

// Get handles GET /api/v1/users/{userID}
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	user, err := h.svc.FindByID(r.Context(), userID)
	if errors.Is(err, services.ErrNotFound) {
		respondError(w, http.StatusNotFound, "User not found")
		return
	}
	if err != nil {
		respondError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"data": user})
}
