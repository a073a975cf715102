package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		id uuid PRIMARY KEY,
		name text NOT NULL,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS users (
		id uuid PRIMARY KEY,
		email text NOT NULL UNIQUE,
		password_hash text NOT NULL,
		full_name text NOT NULL DEFAULT '',
		role text NOT NULL DEFAULT 'employee',
		is_active boolean NOT NULL DEFAULT true,
		slack_user_id text,
		google_user_id text,
		zoom_user_id text,
		data_consent_given boolean NOT NULL DEFAULT false,
		data_consent_updated_at timestamptz,
		preferences jsonb NOT NULL DEFAULT '{}'::jsonb,
		onboarding_completed boolean NOT NULL DEFAULT false,
		team_id uuid REFERENCES teams(id),
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz
	)`,
	`CREATE TABLE IF NOT EXISTS signals (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users(id),
		type text NOT NULL,
		score double precision NOT NULL,
		summary text NOT NULL DEFAULT '',
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS nudges (
		id uuid PRIMARY KEY,
		user_id uuid NOT NULL REFERENCES users(id),
		message text NOT NULL,
		read boolean NOT NULL DEFAULT false,
		created_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS refresh_tokens (
		id uuid PRIMARY KEY,
		subject uuid NOT NULL,
		token_hash text NOT NULL UNIQUE,
		expires_at timestamptz NOT NULL,
		created_at timestamptz NOT NULL,
		revoked boolean NOT NULL DEFAULT false
	)`,
	`CREATE INDEX IF NOT EXISTS idx_signals_user_created ON signals (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_nudges_user_created ON nudges (user_id, created_at DESC)`,
	`CREATE INDEX IF NOT EXISTS idx_refresh_tokens_subject ON refresh_tokens (subject)`,
}

// Migrate applies the schema. Statements are idempotent so the API can run
// them at every startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
