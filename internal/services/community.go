package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// CommunityService handles community and membership business logic
type CommunityService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewCommunityService creates a new community service
func NewCommunityService(db *pgxpool.Pool, logger *zap.SugaredLogger) *CommunityService {
	return &CommunityService{db: db, logger: logger}
}

// Create stores a new community and enrolls the creator as its admin,
// both inside one transaction.
func (s *CommunityService) Create(ctx context.Context, creatorID uuid.UUID, req *models.CreateCommunityRequest) (*models.Community, error) {
	community := &models.Community{
		ID:          uuid.New(),
		Name:        req.Name,
		Niche:       req.Niche,
		MemberCount: 1,
		CreatedAt:   time.Now(),
	}
	if req.Description != "" {
		community.Description = &req.Description
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO communities (id, name, description, niche, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, community.ID, community.Name, community.Description, community.Niche, community.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert community: %w", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO community_members (user_id, community_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
	`, creatorID, community.ID, models.RoleAdmin, community.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("insert admin member: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit community: %w", err)
	}

	s.logger.Infow("Community created",
		"id", community.ID,
		"name", community.Name,
		"niche", community.Niche,
		"creator", creatorID,
	)

	return community, nil
}

// List returns all communities with member counts, newest first.
func (s *CommunityService) List(ctx context.Context) ([]models.Community, error) {
	query := `
		SELECT c.id, c.name, c.description, c.niche, c.created_at, COUNT(m.user_id) AS member_count
		FROM communities c
		LEFT JOIN community_members m ON m.community_id = c.id
		GROUP BY c.id
		ORDER BY c.created_at DESC
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list communities: %w", err)
	}
	defer rows.Close()

	var communities []models.Community
	for rows.Next() {
		var c models.Community
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.Niche, &c.CreatedAt, &c.MemberCount); err != nil {
			continue
		}
		communities = append(communities, c)
	}
	return communities, nil
}

// Get returns a single community with its member count.
func (s *CommunityService) Get(ctx context.Context, id uuid.UUID) (*models.Community, error) {
	query := `
		SELECT c.id, c.name, c.description, c.niche, c.created_at, COUNT(m.user_id) AS member_count
		FROM communities c
		LEFT JOIN community_members m ON m.community_id = c.id
		WHERE c.id = $1
		GROUP BY c.id
	`

	var c models.Community
	err := s.db.QueryRow(ctx, query, id).Scan(&c.ID, &c.Name, &c.Description, &c.Niche, &c.CreatedAt, &c.MemberCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find community: %w", err)
	}

	return &c, nil
}

// Join enrolls a user as a regular member. Re-joining is a no-op.
func (s *CommunityService) Join(ctx context.Context, communityID, userID uuid.UUID) error {
	query := `
		INSERT INTO community_members (user_id, community_id, role, joined_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, community_id) DO NOTHING
	`

	if _, err := s.db.Exec(ctx, query, userID, communityID, models.RoleMember, time.Now()); err != nil {
		return fmt.Errorf("join community: %w", err)
	}

	s.logger.Infow("Member joined community", "community", communityID, "user", userID)
	return nil
}
