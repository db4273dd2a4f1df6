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

// FeedService handles the community social feed
type FeedService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewFeedService creates a new feed service
func NewFeedService(db *pgxpool.Pool, logger *zap.SugaredLogger) *FeedService {
	return &FeedService{db: db, logger: logger}
}

// CreatePost publishes a post to a community's feed.
func (s *FeedService) CreatePost(ctx context.Context, userID, communityID uuid.UUID, req *models.CreatePostRequest) (*models.ActivityPost, error) {
	post := &models.ActivityPost{
		ID:          uuid.New(),
		UserID:      userID,
		CommunityID: communityID,
		Content:     req.Content,
		CreatedAt:   time.Now(),
	}

	query := `
		INSERT INTO activity_posts (id, user_id, community_id, content, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	if _, err := s.db.Exec(ctx, query, post.ID, post.UserID, post.CommunityID, post.Content, post.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}

	return post, nil
}

// ListByCommunity returns a community's feed, newest first.
func (s *FeedService) ListByCommunity(ctx context.Context, communityID uuid.UUID, limit int) ([]models.ActivityPost, error) {
	query := `
		SELECT id, user_id, community_id, content, created_at
		FROM activity_posts
		WHERE community_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Query(ctx, query, communityID, limit)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	defer rows.Close()

	var posts []models.ActivityPost
	for rows.Next() {
		var p models.ActivityPost
		if err := rows.Scan(&p.ID, &p.UserID, &p.CommunityID, &p.Content, &p.CreatedAt); err != nil {
			continue
		}
		posts = append(posts, p)
	}
	return posts, nil
}
