package repo

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/openn02/Tend/internal/wellbeing"
)

// Queries bundles database access for the API services.
type Queries struct {
	pool *pgxpool.Pool
}

// New creates the query set over a pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{pool: pool}
}

const userColumns = `id, email, password_hash, full_name, role, is_active,
	slack_user_id, google_user_id, zoom_user_id,
	data_consent_given, data_consent_updated_at, preferences,
	onboarding_completed, team_id, created_at, updated_at`

func scanUser(row pgx.Row) (User, error) {
	var (
		u     User
		role  string
		prefs []byte
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FullName, &role, &u.IsActive,
		&u.SlackUserID, &u.GoogleUserID, &u.ZoomUserID,
		&u.DataConsentGiven, &u.DataConsentUpdatedAt, &prefs,
		&u.OnboardingCompleted, &u.TeamID, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}

	u.Role, _ = wellbeing.ParseRole(role)
	if len(prefs) > 0 {
		_ = json.Unmarshal(prefs, &u.Preferences)
	}
	return u, nil
}

// GetUserByEmail fetches a user by normalized email.
func (q *Queries) GetUserByEmail(ctx context.Context, email string) (User, error) {
	row := q.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, strings.ToLower(email))
	return scanUser(row)
}

// GetUserByID fetches a user by id.
func (q *Queries) GetUserByID(ctx context.Context, id uuid.UUID) (User, error) {
	row := q.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

// InsertUser persists a new account. The unique email constraint maps to
// ErrDuplicateEmail.
func (q *Queries) InsertUser(ctx context.Context, u User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return err
	}

	_, err = q.pool.Exec(ctx, `
		INSERT INTO users (id, email, password_hash, full_name, role, is_active,
			data_consent_given, preferences, onboarding_completed, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`, u.ID, strings.ToLower(u.Email), u.PasswordHash, u.FullName, u.Role.String(), u.IsActive,
		u.DataConsentGiven, prefs, u.OnboardingCompleted, u.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrDuplicateEmail
		}
		return err
	}
	return nil
}

// UpdateUserProfile writes the mutable profile columns.
func (q *Queries) UpdateUserProfile(ctx context.Context, u User) error {
	prefs, err := json.Marshal(u.Preferences)
	if err != nil {
		return err
	}

	cmd, err := q.pool.Exec(ctx, `
		UPDATE users
		SET full_name = $2, role = $3,
			data_consent_given = $4, data_consent_updated_at = $5,
			preferences = $6, onboarding_completed = $7, updated_at = now()
		WHERE id = $1
	`, u.ID, u.FullName, u.Role.String(),
		u.DataConsentGiven, u.DataConsentUpdatedAt, prefs, u.OnboardingCompleted)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// SetProviderUserID stores the provider-side account id after an OAuth
// exchange, marking the integration as connected.
func (q *Queries) SetProviderUserID(ctx context.Context, userID uuid.UUID, provider, providerUserID string) error {
	var column string
	switch provider {
	case "slack":
		column = "slack_user_id"
	case "google":
		column = "google_user_id"
	case "zoom":
		column = "zoom_user_id"
	default:
		return errors.New("unsupported provider: " + provider)
	}

	cmd, err := q.pool.Exec(ctx, `UPDATE users SET `+column+` = $2, updated_at = now() WHERE id = $1`, userID, providerUserID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// GetTeamByID fetches a team.
func (q *Queries) GetTeamByID(ctx context.Context, id uuid.UUID) (Team, error) {
	var t Team
	err := q.pool.QueryRow(ctx, `SELECT id, name, created_at FROM teams WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Team{}, ErrNotFound
		}
		return Team{}, err
	}
	return t, nil
}

// InsertTeam persists a team.
func (q *Queries) InsertTeam(ctx context.Context, t Team) error {
	_, err := q.pool.Exec(ctx, `INSERT INTO teams (id, name, created_at) VALUES ($1, $2, $3)`,
		t.ID, t.Name, t.CreatedAt)
	return err
}

// AssignUserTeam links a user to a team.
func (q *Queries) AssignUserTeam(ctx context.Context, userID, teamID uuid.UUID) error {
	cmd, err := q.pool.Exec(ctx, `UPDATE users SET team_id = $2, updated_at = now() WHERE id = $1`, userID, teamID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// ListSignalsByUser returns a user's signals, newest first.
func (q *Queries) ListSignalsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Signal, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.pool.Query(ctx, `
		SELECT id, user_id, type, score, summary, created_at
		FROM signals WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var signals []Signal
	for rows.Next() {
		var s Signal
		if err := rows.Scan(&s.ID, &s.UserID, &s.Type, &s.Score, &s.Summary, &s.CreatedAt); err != nil {
			return nil, err
		}
		signals = append(signals, s)
	}
	return signals, rows.Err()
}

// InsertSignal persists one signal.
func (q *Queries) InsertSignal(ctx context.Context, s Signal) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO signals (id, user_id, type, score, summary, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, s.ID, s.UserID, s.Type, s.Score, s.Summary, s.CreatedAt)
	return err
}

// ListNudgesByUser returns a user's nudges, newest first.
func (q *Queries) ListNudgesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Nudge, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := q.pool.Query(ctx, `
		SELECT id, user_id, message, read, created_at
		FROM nudges WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var nudges []Nudge
	for rows.Next() {
		var n Nudge
		if err := rows.Scan(&n.ID, &n.UserID, &n.Message, &n.Read, &n.CreatedAt); err != nil {
			return nil, err
		}
		nudges = append(nudges, n)
	}
	return nudges, rows.Err()
}

// InsertNudge persists one nudge.
func (q *Queries) InsertNudge(ctx context.Context, n Nudge) error {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO nudges (id, user_id, message, read, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`, n.ID, n.UserID, n.Message, n.Read, n.CreatedAt)
	return err
}

// MarkNudgeRead flags a nudge as read; the nudge must belong to the user.
func (q *Queries) MarkNudgeRead(ctx context.Context, userID, nudgeID uuid.UUID) error {
	cmd, err := q.pool.Exec(ctx, `UPDATE nudges SET read = true WHERE id = $1 AND user_id = $2`, nudgeID, userID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InsertRefreshToken persists a refresh token row.
func (q *Queries) InsertRefreshToken(ctx context.Context, arg InsertRefreshTokenParams) (RefreshToken, error) {
	_, err := q.pool.Exec(ctx, `
		INSERT INTO refresh_tokens (id, subject, token_hash, expires_at, created_at, revoked)
		VALUES ($1, $2, $3, $4, $5, false)
	`, arg.ID, arg.Subject, arg.TokenHash, arg.ExpiresAt, arg.CreatedAt)
	if err != nil {
		return RefreshToken{}, err
	}
	return RefreshToken{
		ID:        arg.ID,
		Subject:   arg.Subject,
		TokenHash: arg.TokenHash,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: arg.CreatedAt,
	}, nil
}

// GetRefreshTokenByHash fetches a refresh token row.
func (q *Queries) GetRefreshTokenByHash(ctx context.Context, tokenHash string) (RefreshToken, error) {
	var t RefreshToken
	err := q.pool.QueryRow(ctx, `
		SELECT id, subject, token_hash, expires_at, created_at, revoked
		FROM refresh_tokens WHERE token_hash = $1
	`, tokenHash).Scan(&t.ID, &t.Subject, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt, &t.Revoked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return RefreshToken{}, ErrNotFound
		}
		return RefreshToken{}, err
	}
	return t, nil
}

// RevokeRefreshToken flags one token as revoked.
func (q *Queries) RevokeRefreshToken(ctx context.Context, tokenHash string) error {
	cmd, err := q.pool.Exec(ctx, `UPDATE refresh_tokens SET revoked = true WHERE token_hash = $1`, tokenHash)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// InvalidateOtherRefreshTokens revokes every other live token for a subject,
// keeping the session single-valued.
func (q *Queries) InvalidateOtherRefreshTokens(ctx context.Context, subject uuid.UUID, keepHash string) error {
	_, err := q.pool.Exec(ctx, `
		UPDATE refresh_tokens SET revoked = true
		WHERE subject = $1 AND token_hash <> $2 AND NOT revoked
	`, subject, keepHash)
	return err
}
