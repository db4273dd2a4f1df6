package handlers

import (
	"net/http"
	"time"

	"github.com/ecomate/carbon-server/internal/cache"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var startTime = time.Now()

const serverVersion = "1.2.0"

// HealthHandler provides health check endpoints
type HealthHandler struct {
	db     *pgxpool.Pool
	cache  *cache.Cache
	logger *zap.SugaredLogger
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(db *pgxpool.Pool, c *cache.Cache, logger *zap.SugaredLogger) *HealthHandler {
	return &HealthHandler{db: db, cache: c, logger: logger}
}

// Check handles GET /api/v1/health (liveness probe)
func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, models.HealthStatus{
		Status:  "ok",
		Version: serverVersion,
		Uptime:  time.Since(startTime).String(),
	})
}

// Ready handles GET /api/v1/health/ready (readiness probe)
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	status := models.HealthStatus{
		Status:   "ready",
		Version:  serverVersion,
		Uptime:   time.Since(startTime).String(),
		Database: "connected",
		Cache:    "connected",
	}

	if err := h.db.Ping(r.Context()); err != nil {
		status.Status = "not ready"
		status.Database = "disconnected"
		respondJSON(w, http.StatusServiceUnavailable, status)
		return
	}

	// A cold cache degrades leaderboard latency but not correctness, so
	// readiness only reports it.
	if h.cache != nil {
		if err := h.cache.Ping(r.Context()); err != nil {
			status.Cache = "disconnected"
		}
	}

	respondJSON(w, http.StatusOK, status)
}
