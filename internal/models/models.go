// Package models defines the data structures used across the application.
// These map to the EcoMate PostgreSQL schema.
package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// CommunityNiche categorizes a community's sustainability focus.
type CommunityNiche string

const (
	NicheSustainableTransport CommunityNiche = "SUSTAINABLE_TRANSPORT"
	NicheRenewableEnergy      CommunityNiche = "RENEWABLE_ENERGY"
	NicheZeroWaste            CommunityNiche = "ZERO_WASTE"
	NicheEcoFriendlyDiet      CommunityNiche = "ECO_FRIENDLY_DIET"
	NicheGreenTech            CommunityNiche = "GREEN_TECH"
	NicheSustainableFashion   CommunityNiche = "SUSTAINABLE_FASHION"
	NicheUrbanGardening       CommunityNiche = "URBAN_GARDENING"
	NicheOther                CommunityNiche = "OTHER"
)

var validNiches = map[CommunityNiche]struct{}{
	NicheSustainableTransport: {},
	NicheRenewableEnergy:      {},
	NicheZeroWaste:            {},
	NicheEcoFriendlyDiet:      {},
	NicheGreenTech:            {},
	NicheSustainableFashion:   {},
	NicheUrbanGardening:       {},
	NicheOther:                {},
}

// MemberRole is a user's role inside a community.
type MemberRole string

const (
	RoleAdmin  MemberRole = "ADMIN"
	RoleLeader MemberRole = "LEADER"
	RoleMember MemberRole = "MEMBER"
)

// User is a registered EcoMate account.
type User struct {
	ID        uuid.UUID `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	Image     *string   `json:"image,omitempty" db:"image"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// SignUpRequest is the request body for creating an account.
// The password is bcrypt-hashed before it touches the database.
type SignUpRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Image    string `json:"image,omitempty"`
}

// Validate checks sign-up fields before the service layer runs.
func (r *SignUpRequest) Validate() error {
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return fmt.Errorf("name must be between 2 and 100 characters")
	}
	if r.Email == "" {
		return fmt.Errorf("email is required")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("password must be at least 8 characters")
	}
	return nil
}

// Community is a group of users working toward shared carbon goals.
type Community struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	Name        string         `json:"name" db:"name"`
	Description *string        `json:"description,omitempty" db:"description"`
	Niche       CommunityNiche `json:"niche" db:"niche"`
	MemberCount int            `json:"member_count"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}

// CreateCommunityRequest is the request body for creating a community.
type CreateCommunityRequest struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	Niche       CommunityNiche `json:"niche"`
}

// Validate enforces the community field constraints.
func (r *CreateCommunityRequest) Validate() error {
	if len(r.Name) < 2 || len(r.Name) > 100 {
		return fmt.Errorf("community name must be between 2 and 100 characters")
	}
	if len(r.Description) > 500 {
		return fmt.Errorf("description cannot exceed 500 characters")
	}
	if _, ok := validNiches[r.Niche]; !ok {
		return fmt.Errorf("unknown community niche %q", r.Niche)
	}
	return nil
}

// CommunityMember links a user to a community with a role.
type CommunityMember struct {
	UserID      uuid.UUID  `json:"user_id" db:"user_id"`
	CommunityID uuid.UUID  `json:"community_id" db:"community_id"`
	Role        MemberRole `json:"role" db:"role"`
	JoinedAt    time.Time  `json:"joined_at" db:"joined_at"`
}

// CommunityGoal is a measurable carbon target for a community.
type CommunityGoal struct {
	ID          uuid.UUID `json:"id" db:"id"`
	CommunityID uuid.UUID `json:"community_id" db:"community_id"`
	CreatedByID uuid.UUID `json:"created_by_id" db:"created_by_id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	TargetValue float64   `json:"target_value" db:"target_value"`
	Progress    float64   `json:"progress" db:"progress"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// GoalWithCompletion decorates a goal with its completion percentage,
// rendered as a 2-decimal string for the analytics view.
type GoalWithCompletion struct {
	CommunityGoal
	CompletionPercentage string `json:"completion_percentage"`
}

// CreateGoalRequest is the request body for creating a community goal.
type CreateGoalRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	TargetValue float64 `json:"target_value"`
}

// Validate enforces the goal field constraints.
func (r *CreateGoalRequest) Validate() error {
	if len(r.Title) < 2 || len(r.Title) > 100 {
		return fmt.Errorf("goal title must be between 2 and 100 characters")
	}
	if len(r.Description) > 500 {
		return fmt.Errorf("description cannot exceed 500 characters")
	}
	if r.TargetValue <= 0 {
		return fmt.Errorf("target value must be positive")
	}
	return nil
}

// ActivityLog records carbon saved by a user, optionally against a goal.
// CarbonSaved is measured in tons.
type ActivityLog struct {
	ID           uuid.UUID  `json:"id" db:"id"`
	UserID       uuid.UUID  `json:"user_id" db:"user_id"`
	CommunityID  *uuid.UUID `json:"community_id,omitempty" db:"community_id"`
	GoalID       *uuid.UUID `json:"goal_id,omitempty" db:"goal_id"`
	Description  string     `json:"description" db:"description"`
	CarbonSaved  float64    `json:"carbon_saved" db:"carbon_saved"`
	ActivityDate time.Time  `json:"activity_date" db:"activity_date"`
	CreatedAt    time.Time  `json:"created_at" db:"created_at"`
}

// CreateActivityLogRequest is the request body for logging an activity.
type CreateActivityLogRequest struct {
	GoalID       *uuid.UUID `json:"goal_id,omitempty"`
	Description  string     `json:"description"`
	CarbonSaved  float64    `json:"carbon_saved"`
	ActivityDate time.Time  `json:"activity_date"`
}

// Validate enforces the activity log constraints: bounded description,
// non-negative carbon, and no future-dated activity.
func (r *CreateActivityLogRequest) Validate() error {
	if len(r.Description) < 2 || len(r.Description) > 500 {
		return fmt.Errorf("description must be between 2 and 500 characters")
	}
	if r.CarbonSaved < 0 {
		return fmt.Errorf("carbon saved cannot be negative")
	}
	if r.ActivityDate.IsZero() {
		return fmt.Errorf("activity date is required")
	}
	if r.ActivityDate.After(time.Now()) {
		return fmt.Errorf("activity date cannot be in the future")
	}
	return nil
}

// ActivityPost is a free-form social feed entry within a community.
type ActivityPost struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	CommunityID uuid.UUID `json:"community_id" db:"community_id"`
	Content     string    `json:"content" db:"content"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// CreatePostRequest is the request body for a feed post.
type CreatePostRequest struct {
	Content string `json:"content"`
}

// Validate enforces the feed post constraints.
func (r *CreatePostRequest) Validate() error {
	if len(r.Content) < 1 {
		return fmt.Errorf("post content cannot be empty")
	}
	if len(r.Content) > 2000 {
		return fmt.Errorf("post content cannot exceed 2000 characters")
	}
	return nil
}

// HealthStatus represents the server health check response.
type HealthStatus struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Uptime   string `json:"uptime"`
	Database string `json:"database,omitempty"`
	Cache    string `json:"cache,omitempty"`
}
