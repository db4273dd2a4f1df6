package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// GoalService handles community goal business logic
type GoalService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewGoalService creates a new goal service
func NewGoalService(db *pgxpool.Pool, logger *zap.SugaredLogger) *GoalService {
	return &GoalService{db: db, logger: logger}
}

// Create stores a new community goal with zero progress.
func (s *GoalService) Create(ctx context.Context, communityID, creatorID uuid.UUID, req *models.CreateGoalRequest) (*models.CommunityGoal, error) {
	goal := &models.CommunityGoal{
		ID:          uuid.New(),
		CommunityID: communityID,
		CreatedByID: creatorID,
		Title:       req.Title,
		Description: req.Description,
		TargetValue: req.TargetValue,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO community_goals (id, community_id, created_by_id, title, description, target_value, progress, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, 0, $7)
	`
	_, err := s.db.Exec(ctx, query,
		goal.ID, goal.CommunityID, goal.CreatedByID,
		goal.Title, goal.Description, goal.TargetValue, goal.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("insert goal: %w", err)
	}

	s.logger.Infow("Goal created",
		"id", goal.ID,
		"community", communityID,
		"target", goal.TargetValue,
	)

	return goal, nil
}

// ListByCommunity returns a community's goals, most progressed first.
func (s *GoalService) ListByCommunity(ctx context.Context, communityID uuid.UUID) ([]models.CommunityGoal, error) {
	query := `
		SELECT id, community_id, created_by_id, title, description, target_value, progress, created_at
		FROM community_goals
		WHERE community_id = $1
		ORDER BY progress DESC
	`

	rows, err := s.db.Query(ctx, query, communityID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var goals []models.CommunityGoal
	for rows.Next() {
		var g models.CommunityGoal
		if err := rows.Scan(&g.ID, &g.CommunityID, &g.CreatedByID, &g.Title,
			&g.Description, &g.TargetValue, &g.Progress, &g.CreatedAt); err != nil {
			continue
		}
		goals = append(goals, g)
	}
	return goals, nil
}

// AddProgress bumps a goal's progress by the carbon saved in an activity
// log that references it.
func (s *GoalService) AddProgress(ctx context.Context, goalID uuid.UUID, delta float64) error {
	query := `UPDATE community_goals SET progress = progress + $2 WHERE id = $1`

	if _, err := s.db.Exec(ctx, query, goalID, delta); err != nil {
		return fmt.Errorf("update goal progress: %w", err)
	}
	return nil
}
