package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/analytics"
	"github.com/ecomate/carbon-server/internal/cache"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// CommunityAnalytics is the analytics view for one community: the metrics
// snapshot plus every goal decorated with its completion percentage.
type CommunityAnalytics struct {
	Community struct {
		ID   uuid.UUID `json:"id"`
		Name string    `json:"name"`
	} `json:"community"`
	Metrics analytics.MetricsSnapshot   `json:"metrics"`
	Goals   []models.GoalWithCompletion `json:"goals"`
}

// CommunityStatsService assembles the analytics view for a community from
// its activity logs and goals.
type CommunityStatsService struct {
	logs        *ActivityLogService
	goals       *GoalService
	communities *CommunityService
	cache       *cache.Cache
	ttl         time.Duration
	logger      *zap.SugaredLogger
}

// NewCommunityStatsService creates a new community stats service
func NewCommunityStatsService(logs *ActivityLogService, goals *GoalService, communities *CommunityService, c *cache.Cache, ttl time.Duration, logger *zap.SugaredLogger) *CommunityStatsService {
	return &CommunityStatsService{
		logs:        logs,
		goals:       goals,
		communities: communities,
		cache:       c,
		ttl:         ttl,
		logger:      logger,
	}
}

// Aggregate builds the community analytics response: aggregate the
// community's activity logs in memory, then attach goals with completion
// percentages. Returns ErrNotFound for an unknown community.
func (s *CommunityStatsService) Aggregate(ctx context.Context, communityID uuid.UUID) (*CommunityAnalytics, error) {
	key := communityAnalyticsKey(communityID)
	if s.cache != nil {
		var cached CommunityAnalytics
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return &cached, nil
		}
	}

	community, err := s.communities.Get(ctx, communityID)
	if err != nil {
		return nil, err
	}

	entries, err := s.logs.FetchEntries(ctx, &communityID)
	if err != nil {
		return nil, fmt.Errorf("aggregate fetch: %w", err)
	}

	goals, err := s.goals.ListByCommunity(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("aggregate goals: %w", err)
	}

	result := &CommunityAnalytics{
		Metrics: analytics.Aggregate(entries),
		Goals:   make([]models.GoalWithCompletion, 0, len(goals)),
	}
	result.Community.ID = community.ID
	result.Community.Name = community.Name

	for _, g := range goals {
		result.Goals = append(result.Goals, models.GoalWithCompletion{
			CommunityGoal:        g,
			CompletionPercentage: analytics.CompletionPercent(g.Progress, g.TargetValue),
		})
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, result, s.ttl)
	}
	return result, nil
}
