package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/openn02/Tend/internal/repo"
)

// ErrNoTeam signals a user without a team assignment.
var ErrNoTeam = errors.New("user is not part of any team")

type insightsRepository interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (repo.User, error)
	GetTeamByID(ctx context.Context, id uuid.UUID) (repo.Team, error)
	ListSignalsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]repo.Signal, error)
	ListNudgesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]repo.Nudge, error)
	MarkNudgeRead(ctx context.Context, userID, nudgeID uuid.UUID) error
}

// InsightsService serves stored signals, nudges and team data. Signals are
// written by seeding or future ingestion; no scoring happens here.
type InsightsService struct {
	repo insightsRepository
}

// NewInsightsService creates the service.
func NewInsightsService(r insightsRepository) *InsightsService {
	return &InsightsService{repo: r}
}

// SignalResponse is the wire shape of a stored signal.
type SignalResponse struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Score     float64   `json:"score"`
	Summary   string    `json:"summary"`
	CreatedAt time.Time `json:"created_at"`
}

// NudgeResponse is the wire shape of a nudge.
type NudgeResponse struct {
	ID        string    `json:"id"`
	Message   string    `json:"message"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamResponse is the wire shape of a team.
type TeamResponse struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// TeamMetricResponse is one anonymized team dimension.
type TeamMetricResponse struct {
	Dimension string  `json:"dimension"`
	Label     string  `json:"label"`
	Trend     string  `json:"trend"`
	Change    string  `json:"change"`
	Score     float64 `json:"score"`
}

// MySignals lists the subject's signals, newest first.
func (s *InsightsService) MySignals(ctx context.Context, subject uuid.UUID, limit int) ([]SignalResponse, error) {
	signals, err := s.repo.ListSignalsByUser(ctx, subject, limit)
	if err != nil {
		return nil, err
	}

	out := make([]SignalResponse, 0, len(signals))
	for _, sig := range signals {
		out = append(out, SignalResponse{
			ID:        sig.ID.String(),
			Type:      sig.Type,
			Score:     sig.Score,
			Summary:   sig.Summary,
			CreatedAt: sig.CreatedAt,
		})
	}
	return out, nil
}

// MyNudges lists the subject's nudges, newest first.
func (s *InsightsService) MyNudges(ctx context.Context, subject uuid.UUID, limit int) ([]NudgeResponse, error) {
	nudges, err := s.repo.ListNudgesByUser(ctx, subject, limit)
	if err != nil {
		return nil, err
	}

	out := make([]NudgeResponse, 0, len(nudges))
	for _, n := range nudges {
		out = append(out, NudgeResponse{
			ID:        n.ID.String(),
			Message:   n.Message,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
		})
	}
	return out, nil
}

// MarkNudgeRead flags one of the subject's nudges as read.
func (s *InsightsService) MarkNudgeRead(ctx context.Context, subject, nudgeID uuid.UUID) error {
	return s.repo.MarkNudgeRead(ctx, subject, nudgeID)
}

// MyTeam resolves the subject's team.
func (s *InsightsService) MyTeam(ctx context.Context, subject uuid.UUID) (TeamResponse, error) {
	user, err := s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return TeamResponse{}, err
	}
	if user.TeamID == nil {
		return TeamResponse{}, ErrNoTeam
	}

	team, err := s.repo.GetTeamByID(ctx, *user.TeamID)
	if err != nil {
		return TeamResponse{}, err
	}
	return TeamResponse{ID: team.ID.String(), Name: team.Name}, nil
}

// MyTeamMetrics returns the anonymized per-dimension aggregates for the
// subject's team. The aggregates are the canned dataset the dashboard ships
// with; computing them from raw signals is out of scope.
func (s *InsightsService) MyTeamMetrics(ctx context.Context, subject uuid.UUID) ([]TeamMetricResponse, error) {
	user, err := s.repo.GetUserByID(ctx, subject)
	if err != nil {
		return nil, err
	}
	if user.TeamID == nil {
		return nil, ErrNoTeam
	}

	return []TeamMetricResponse{
		{Dimension: "Workload", Label: "Elevated", Trend: "rising", Change: "+14%", Score: 0.72},
		{Dimension: "Sentiment", Label: "Neutral", Trend: "stable", Change: "0%", Score: 0.55},
		{Dimension: "Engagement", Label: "Steady", Trend: "stable", Change: "+5%", Score: 0.61},
		{Dimension: "Recovery", Label: "Low", Trend: "declining", Change: "-12%", Score: 0.31},
	}, nil
}
