package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/openn02/Tend/internal/auth"
	"github.com/openn02/Tend/internal/config"
	"github.com/openn02/Tend/internal/db"
	"github.com/openn02/Tend/internal/repo"
	"github.com/openn02/Tend/internal/util"
	"github.com/openn02/Tend/internal/wellbeing"
)

// Seeds a demo team with one account per role plus sample signals and
// nudges, so a fresh database has something to show on every dashboard.
// Re-running is safe: existing accounts are left alone.

const demoPassword = "tendemo123"

type demoUser struct {
	email   string
	name    string
	role    wellbeing.Role
	signals []repo.Signal
	nudges  []string
}

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339})

	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	ctx := context.Background()

	pool, err := db.NewPool(ctx, cfg.DBDSN)
	if err != nil {
		return fmt.Errorf("db: %w", err)
	}
	defer pool.Close()

	if err := db.Migrate(ctx, pool); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	queries := repo.New(pool)

	team := repo.Team{ID: uuid.New(), Name: "Product", CreatedAt: util.Now()}
	if err := queries.InsertTeam(ctx, team); err != nil {
		return fmt.Errorf("insert team: %w", err)
	}

	users := []demoUser{
		{
			email: "employee@tend.dev",
			name:  "Ollie Employee",
			role:  wellbeing.RoleEmployee,
			signals: []repo.Signal{
				{Type: "workload", Score: 0.72, Summary: "Elevated: 18 meetings, 3 late nights, high Slack volume"},
				{Type: "sentiment", Score: 0.48, Summary: "Caution: tone dip, fewer emojis, less positive language"},
				{Type: "engagement", Score: 0.61, Summary: "Steady: consistent replies, few missed meetings"},
				{Type: "recovery", Score: 0.31, Summary: "Low: 4 late nights, no PTO, few breaks"},
			},
			nudges: []string{
				"Block 2 hours of focus time on Friday.",
				"Take Friday morning to recover.",
			},
		},
		{
			email: "manager@tend.dev",
			name:  "Morgan Manager",
			role:  wellbeing.RoleManager,
			signals: []repo.Signal{
				{Type: "workload", Score: 0.66, Summary: "Elevated: back to back syncs most afternoons"},
				{Type: "recovery", Score: 0.40, Summary: "Moderate: some after-hours catch-up"},
			},
			nudges: []string{
				"Consider pausing Friday standups this week.",
			},
		},
		{
			email: "hr@tend.dev",
			name:  "Harper People",
			role:  wellbeing.RoleHR,
		},
	}

	passwordHash, err := auth.Hash(demoPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	for _, du := range users {
		if err := seedUser(ctx, queries, team.ID, du, passwordHash); err != nil {
			return fmt.Errorf("seed %s: %w", du.email, err)
		}
	}

	log.Info().Str("team", team.Name).Int("users", len(users)).
		Msgf("seeded demo data; all accounts use password %q", demoPassword)
	return nil
}

func seedUser(ctx context.Context, queries *repo.Queries, teamID uuid.UUID, du demoUser, passwordHash string) error {
	if _, err := queries.GetUserByEmail(ctx, du.email); err == nil {
		log.Info().Str("email", du.email).Msg("already exists, skipping")
		return nil
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	now := util.Now()
	user := repo.User{
		ID:                   uuid.New(),
		Email:                du.email,
		PasswordHash:         passwordHash,
		FullName:             du.name,
		Role:                 du.role,
		IsActive:             true,
		DataConsentGiven:     true,
		DataConsentUpdatedAt: &now,
		Preferences:          wellbeing.DefaultPreferences(du.role),
		OnboardingCompleted:  true,
		CreatedAt:            now,
	}
	if err := queries.InsertUser(ctx, user); err != nil {
		return err
	}
	if err := queries.AssignUserTeam(ctx, user.ID, teamID); err != nil {
		return err
	}

	for i, signal := range du.signals {
		signal.ID = uuid.New()
		signal.UserID = user.ID
		signal.CreatedAt = now.Add(-time.Duration(i) * 24 * time.Hour)
		if err := queries.InsertSignal(ctx, signal); err != nil {
			return err
		}
	}

	for _, message := range du.nudges {
		nudge := repo.Nudge{
			ID:        uuid.New(),
			UserID:    user.ID,
			Message:   message,
			CreatedAt: now,
		}
		if err := queries.InsertNudge(ctx, nudge); err != nil {
			return err
		}
	}

	log.Info().Str("email", du.email).Str("role", du.role.String()).Msg("seeded user")
	return nil
}
