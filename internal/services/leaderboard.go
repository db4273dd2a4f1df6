package services

import (
	"context"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/analytics"
	"github.com/ecomate/carbon-server/internal/cache"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const cacheKeyGlobalLeaderboard = "leaderboard:global"

func communityLeaderboardKey(id uuid.UUID) string {
	return "leaderboard:community:" + id.String()
}

func communityAnalyticsKey(id uuid.UUID) string {
	return "analytics:community:" + id.String()
}

// LeaderboardService ranks contributors by total carbon saved. The
// grouping/summing runs in-process over rows fetched from Postgres, so the
// ranking contract stays identical if the reduction ever moves server-side.
// Computed boards are cached in Redis with a short TTL and invalidated when
// a new activity log lands in their scope.
type LeaderboardService struct {
	logs   *ActivityLogService
	users  *UserService
	cache  *cache.Cache
	ttl    time.Duration
	logger *zap.SugaredLogger

	globalSize    int
	communitySize int
}

// NewLeaderboardService creates a new leaderboard service
func NewLeaderboardService(logs *ActivityLogService, users *UserService, c *cache.Cache, ttl time.Duration, globalSize, communitySize int, logger *zap.SugaredLogger) *LeaderboardService {
	return &LeaderboardService{
		logs:          logs,
		users:         users,
		cache:         c,
		ttl:           ttl,
		logger:        logger,
		globalSize:    globalSize,
		communitySize: communitySize,
	}
}

// Global returns the top contributors across every activity log,
// regardless of community.
func (s *LeaderboardService) Global(ctx context.Context) ([]analytics.LeaderboardEntry, error) {
	if s.cache != nil {
		var cached []analytics.LeaderboardEntry
		if err := s.cache.GetJSON(ctx, cacheKeyGlobalLeaderboard, &cached); err == nil {
			return cached, nil
		}
	}

	board, err := s.compute(ctx, nil, s.globalSize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheKeyGlobalLeaderboard, board, s.ttl)
	}
	return board, nil
}

// Community returns the top contributors within one community.
func (s *LeaderboardService) Community(ctx context.Context, communityID uuid.UUID) ([]analytics.LeaderboardEntry, error) {
	key := communityLeaderboardKey(communityID)
	if s.cache != nil {
		var cached []analytics.LeaderboardEntry
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	board, err := s.compute(ctx, &communityID, s.communitySize)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.SetJSON(ctx, key, board, s.ttl)
	}
	return board, nil
}

// RefreshGlobal recomputes the global board and overwrites the cache,
// ignoring any live entry. Used by the background snapshot worker.
func (s *LeaderboardService) RefreshGlobal(ctx context.Context) (int, error) {
	board, err := s.compute(ctx, nil, s.globalSize)
	if err != nil {
		return 0, err
	}
	if s.cache != nil {
		s.cache.SetJSON(ctx, cacheKeyGlobalLeaderboard, board, s.ttl)
	}
	return len(board), nil
}

// compute is the fetch → rank → enrich pipeline shared by every board.
func (s *LeaderboardService) compute(ctx context.Context, communityID *uuid.UUID, limit int) ([]analytics.LeaderboardEntry, error) {
	entries, err := s.logs.FetchEntries(ctx, communityID)
	if err != nil {
		return nil, fmt.Errorf("leaderboard fetch: %w", err)
	}

	ranked := analytics.Rank(entries, limit)

	ids := make([]uuid.UUID, 0, len(ranked))
	for _, r := range ranked {
		ids = append(ids, r.UserID)
	}

	identities, err := s.users.IdentityMap(ctx, ids)
	if err != nil {
		// A failed identity join degrades to placeholder names rather
		// than failing the whole board.
		s.logger.Warnw("Identity join failed, serving placeholders", "error", err)
		identities = nil
	}

	board := analytics.Enrich(ranked, identities)
	if board == nil {
		board = []analytics.LeaderboardEntry{}
	}
	return board, nil
}
