package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/analytics"
	"github.com/ecomate/carbon-server/internal/cache"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// ActivityLogService handles carbon activity log business logic
type ActivityLogService struct {
	db     *pgxpool.Pool
	cache  *cache.Cache
	logger *zap.SugaredLogger
}

// NewActivityLogService creates a new activity log service
func NewActivityLogService(db *pgxpool.Pool, c *cache.Cache, logger *zap.SugaredLogger) *ActivityLogService {
	return &ActivityLogService{db: db, cache: c, logger: logger}
}

// Create records carbon saved by a user within a community and drops the
// cached leaderboards and analytics the new log invalidates.
func (s *ActivityLogService) Create(ctx context.Context, userID, communityID uuid.UUID, req *models.CreateActivityLogRequest) (*models.ActivityLog, error) {
	log := &models.ActivityLog{
		ID:           uuid.New(),
		UserID:       userID,
		CommunityID:  &communityID,
		GoalID:       req.GoalID,
		Description:  req.Description,
		CarbonSaved:  req.CarbonSaved,
		ActivityDate: req.ActivityDate,
		CreatedAt:    time.Now(),
	}

	query := `
		INSERT INTO activity_logs (id, user_id, community_id, goal_id, description, carbon_saved, activity_date, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := s.db.Exec(ctx, query,
		log.ID, log.UserID, log.CommunityID, log.GoalID,
		log.Description, log.CarbonSaved, log.ActivityDate, log.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert activity log: %w", err)
	}

	if s.cache != nil {
		s.cache.Invalidate(ctx,
			cacheKeyGlobalLeaderboard,
			communityLeaderboardKey(communityID),
			communityAnalyticsKey(communityID),
		)
	}

	s.logger.Infow("Activity logged",
		"user", userID,
		"community", communityID,
		"carbon_saved", req.CarbonSaved,
	)

	return log, nil
}

// ListByCommunity returns a community's activity logs, newest first.
func (s *ActivityLogService) ListByCommunity(ctx context.Context, communityID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	query := `
		SELECT id, user_id, community_id, goal_id, description, carbon_saved, activity_date, created_at
		FROM activity_logs
		WHERE community_id = $1
		ORDER BY activity_date DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, communityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()

	var logs []models.ActivityLog
	for rows.Next() {
		var l models.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.CommunityID, &l.GoalID,
			&l.Description, &l.CarbonSaved, &l.ActivityDate, &l.CreatedAt); err != nil {
			continue
		}
		logs = append(logs, l)
	}
	return logs, nil
}

// FetchEntries loads the slim row shape the aggregation and ranking engine
// consumes. A nil communityID means global scope: every log row counts,
// including ones logged outside any community.
func (s *ActivityLogService) FetchEntries(ctx context.Context, communityID *uuid.UUID) ([]analytics.LogEntry, error) {
	query := `
		SELECT user_id, community_id, carbon_saved, activity_date
		FROM activity_logs
	`
	args := []interface{}{}
	if communityID != nil {
		query += ` WHERE community_id = $1`
		args = append(args, *communityID)
	}
	query += ` ORDER BY created_at ASC`

	rows, err := s.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch log entries: %w", err)
	}
	defer rows.Close()

	var entries []analytics.LogEntry
	for rows.Next() {
		var e analytics.LogEntry
		if err := rows.Scan(&e.UserID, &e.CommunityID, &e.CarbonSaved, &e.ActivityDate); err != nil {
			continue
		}
		entries = append(entries, e)
	}
	return entries, nil
}
