package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/openn02/Tend/internal/repo"
	"github.com/openn02/Tend/internal/util"
	"github.com/openn02/Tend/internal/wellbeing"
)

// ErrUnsupportedProvider signals an integration provider we do not know.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// Profile is the wire representation of a user, matching the contract the
// dashboard consumes.
type Profile struct {
	ID                   string                `json:"id"`
	Email                string                `json:"email"`
	FullName             string                `json:"full_name"`
	Role                 wellbeing.Role        `json:"role"`
	IsActive             bool                  `json:"is_active"`
	DataConsentGiven     bool                  `json:"data_consent_given"`
	DataConsentUpdatedAt *time.Time            `json:"data_consent_updated_at,omitempty"`
	Preferences          wellbeing.Preferences `json:"preferences"`
	OnboardingCompleted  bool                  `json:"onboarding_completed"`
	SlackUserID          *string               `json:"slack_user_id,omitempty"`
	GoogleUserID         *string               `json:"google_user_id,omitempty"`
	ZoomUserID           *string               `json:"zoom_user_id,omitempty"`
	TeamID               *string               `json:"team_id,omitempty"`
	CreatedAt            time.Time             `json:"created_at"`
	UpdatedAt            *time.Time            `json:"updated_at,omitempty"`
}

// ProfileUpdate is a partial update; nil fields are left untouched.
type ProfileUpdate struct {
	FullName            *string
	Role                *wellbeing.Role
	DataConsentGiven    *bool
	Preferences         *wellbeing.Preferences
	OnboardingCompleted *bool
}

// IntegrationStatus reports one provider's connection state.
type IntegrationStatus struct {
	Connected bool       `json:"connected"`
	LastSync  *time.Time `json:"last_sync,omitempty"`
}

type userRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (repo.User, error)
	UpdateUserProfile(ctx context.Context, u repo.User) error
	SetProviderUserID(ctx context.Context, userID uuid.UUID, provider, providerUserID string) error
}

// UserService serves profile reads and partial updates.
type UserService struct {
	repo userRepository
}

// NewUserService creates the service.
func NewUserService(r userRepository) *UserService {
	return &UserService{repo: r}
}

// GetMe returns the full profile for a subject.
func (s *UserService) GetMe(ctx context.Context, subject uuid.UUID) (Profile, error) {
	user, err := s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return Profile{}, err
	}
	return profileFromUser(user), nil
}

// UpdateMe applies a partial profile update. Flipping the consent flag stamps
// data_consent_updated_at.
func (s *UserService) UpdateMe(ctx context.Context, subject uuid.UUID, in ProfileUpdate) (Profile, error) {
	user, err := s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return Profile{}, err
	}

	if in.FullName != nil {
		user.FullName = strings.TrimSpace(*in.FullName)
	}
	if in.Role != nil && *in.Role != wellbeing.RoleUnknown {
		user.Role = *in.Role
	}
	if in.DataConsentGiven != nil && *in.DataConsentGiven != user.DataConsentGiven {
		user.DataConsentGiven = *in.DataConsentGiven
		now := util.Now()
		user.DataConsentUpdatedAt = &now
	}
	if in.Preferences != nil {
		user.Preferences = *in.Preferences
	}
	if in.OnboardingCompleted != nil {
		user.OnboardingCompleted = *in.OnboardingCompleted
	}

	if err := s.repo.UpdateUserProfile(ctx, user); err != nil {
		return Profile{}, err
	}

	user, err = s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return Profile{}, err
	}
	return profileFromUser(user), nil
}

// IntegrationStatus reports whether a provider account is linked. A linked
// provider id is what "connected" means; last_sync is the profile's last
// update when connected.
func (s *UserService) IntegrationStatus(ctx context.Context, subject uuid.UUID, provider string) (IntegrationStatus, error) {
	user, err := s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return IntegrationStatus{}, err
	}

	var linked *string
	switch provider {
	case "google":
		linked = user.GoogleUserID
	case "slack":
		linked = user.SlackUserID
	case "zoom":
		linked = user.ZoomUserID
	default:
		return IntegrationStatus{}, ErrUnsupportedProvider
	}

	status := IntegrationStatus{Connected: linked != nil && *linked != ""}
	if status.Connected {
		status.LastSync = user.UpdatedAt
	}
	return status, nil
}

// LinkProviderAccount stores the provider-side account id after an OAuth
// exchange.
func (s *UserService) LinkProviderAccount(ctx context.Context, subject uuid.UUID, provider, providerUserID string) error {
	return s.repo.SetProviderUserID(ctx, subject, provider, providerUserID)
}

func profileFromUser(u repo.User) Profile {
	p := Profile{
		ID:                   u.ID.String(),
		Email:                u.Email,
		FullName:             u.FullName,
		Role:                 u.Role,
		IsActive:             u.IsActive,
		DataConsentGiven:     u.DataConsentGiven,
		DataConsentUpdatedAt: u.DataConsentUpdatedAt,
		Preferences:          u.Preferences,
		OnboardingCompleted:  u.OnboardingCompleted,
		SlackUserID:          u.SlackUserID,
		GoogleUserID:         u.GoogleUserID,
		ZoomUserID:           u.ZoomUserID,
		CreatedAt:            u.CreatedAt,
		UpdatedAt:            u.UpdatedAt,
	}
	if u.TeamID != nil {
		id := u.TeamID.String()
		p.TeamID = &id
	}
	return p
}
