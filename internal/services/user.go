// Package services contains business logic layers.
// Services are called by handlers and interact with the database.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ecomate/carbon-server/internal/analytics"
	"github.com/ecomate/carbon-server/internal/models"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// ErrNotFound is returned when a requested row does not exist.
var ErrNotFound = errors.New("not found")

// ErrEmailTaken is returned when sign-up hits an existing email.
var ErrEmailTaken = errors.New("email already registered")

// UserService handles account business logic. It also serves as the
// identity provider for leaderboard enrichment.
type UserService struct {
	db     *pgxpool.Pool
	logger *zap.SugaredLogger
}

// NewUserService creates a new user service
func NewUserService(db *pgxpool.Pool, logger *zap.SugaredLogger) *UserService {
	return &UserService{db: db, logger: logger}
}

// SignUp registers a new account with a bcrypt-hashed password.
func (s *UserService) SignUp(ctx context.Context, req *models.SignUpRequest) (*models.User, error) {
	var exists bool
	err := s.db.QueryRow(ctx, "SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)", req.Email).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:        uuid.New(),
		Name:      req.Name,
		Email:     req.Email,
		CreatedAt: time.Now(),
	}
	if req.Image != "" {
		user.Image = &req.Image
	}

	query := `
		INSERT INTO users (id, name, email, password_hash, image, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	if _, err := s.db.Exec(ctx, query, user.ID, user.Name, user.Email, string(hash), user.Image, user.CreatedAt); err != nil {
		return nil, fmt.Errorf("insert user: %w", err)
	}

	s.logger.Infow("User registered", "id", user.ID, "email", user.Email)
	return user, nil
}

// FindByID returns a single user by ID.
func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	query := `SELECT id, name, email, image, created_at FROM users WHERE id = $1`

	var u models.User
	err := s.db.QueryRow(ctx, query, id).Scan(&u.ID, &u.Name, &u.Email, &u.Image, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}

	return &u, nil
}

// IdentityMap batch-loads display identities for leaderboard enrichment.
// IDs without a matching row are simply absent from the map; the ranking
// layer substitutes placeholders for those.
func (s *UserService) IdentityMap(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]analytics.Identity, error) {
	identities := make(map[uuid.UUID]analytics.Identity, len(ids))
	if len(ids) == 0 {
		return identities, nil
	}

	query := `SELECT id, name, image FROM users WHERE id = ANY($1)`
	rows, err := s.db.Query(ctx, query, ids)
	if err != nil {
		return nil, fmt.Errorf("load identities: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id    uuid.UUID
			name  string
			image *string
		)
		if err := rows.Scan(&id, &name, &image); err != nil {
			continue
		}
		identities[id] = analytics.Identity{Name: name, Image: image}
	}

	return identities, nil
}
