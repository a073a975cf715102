package repo

import (
	"time"

	"github.com/google/uuid"

	"github.com/openn02/Tend/internal/wellbeing"
)

// User models the users table.
type User struct {
	ID                   uuid.UUID
	Email                string
	PasswordHash         string
	FullName             string
	Role                 wellbeing.Role
	IsActive             bool
	SlackUserID          *string
	GoogleUserID         *string
	ZoomUserID           *string
	DataConsentGiven     bool
	DataConsentUpdatedAt *time.Time
	Preferences          wellbeing.Preferences
	OnboardingCompleted  bool
	TeamID               *uuid.UUID
	CreatedAt            time.Time
	UpdatedAt            *time.Time
}

// Team groups users for the manager dashboard.
type Team struct {
	ID        uuid.UUID
	Name      string
	CreatedAt time.Time
}

// Signal is one stored wellbeing observation for a user.
type Signal struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Type      string
	Score     float64
	Summary   string
	CreatedAt time.Time
}

// Nudge is a proactive suggestion delivered to a user.
type Nudge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Message   string
	Read      bool
	CreatedAt time.Time
}

// RefreshToken models the refresh_tokens table.
type RefreshToken struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
	Revoked   bool
}

// InsertRefreshTokenParams carries a refresh token row to persist.
type InsertRefreshTokenParams struct {
	ID        uuid.UUID
	Subject   uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
