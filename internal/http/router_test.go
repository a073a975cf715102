package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/openn02/Tend/internal/auth"
	"github.com/openn02/Tend/internal/config"
	"github.com/openn02/Tend/internal/repo"
	"github.com/openn02/Tend/internal/service"
	"github.com/openn02/Tend/internal/util"
	"github.com/openn02/Tend/internal/wellbeing"
)

// stubRepo backs every service with in-memory maps.
type stubRepo struct {
	usersByEmail map[string]repo.User
	usersByID    map[uuid.UUID]repo.User
	teams        map[uuid.UUID]repo.Team
	signals      map[uuid.UUID][]repo.Signal
	nudges       map[uuid.UUID][]repo.Nudge
	tokens       map[string]repo.RefreshToken
}

func newStubRepo() *stubRepo {
	return &stubRepo{
		usersByEmail: map[string]repo.User{},
		usersByID:    map[uuid.UUID]repo.User{},
		teams:        map[uuid.UUID]repo.Team{},
		signals:      map[uuid.UUID][]repo.Signal{},
		nudges:       map[uuid.UUID][]repo.Nudge{},
		tokens:       map[string]repo.RefreshToken{},
	}
}

func (s *stubRepo) addUser(u repo.User) {
	s.usersByEmail[u.Email] = u
	s.usersByID[u.ID] = u
}

func (s *stubRepo) GetUserByEmail(_ context.Context, email string) (repo.User, error) {
	u, ok := s.usersByEmail[email]
	if !ok {
		return repo.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) GetUserByID(_ context.Context, id uuid.UUID) (repo.User, error) {
	u, ok := s.usersByID[id]
	if !ok {
		return repo.User{}, repo.ErrNotFound
	}
	return u, nil
}

func (s *stubRepo) InsertUser(_ context.Context, u repo.User) error {
	if _, ok := s.usersByEmail[u.Email]; ok {
		return repo.ErrDuplicateEmail
	}
	s.addUser(u)
	return nil
}

func (s *stubRepo) UpdateUserProfile(_ context.Context, u repo.User) error {
	if _, ok := s.usersByID[u.ID]; !ok {
		return repo.ErrNotFound
	}
	s.addUser(u)
	return nil
}

func (s *stubRepo) SetProviderUserID(_ context.Context, userID uuid.UUID, provider, providerUserID string) error {
	u, ok := s.usersByID[userID]
	if !ok {
		return repo.ErrNotFound
	}
	switch provider {
	case "slack":
		u.SlackUserID = &providerUserID
	case "google":
		u.GoogleUserID = &providerUserID
	case "zoom":
		u.ZoomUserID = &providerUserID
	default:
		return fmt.Errorf("unknown provider %s", provider)
	}
	s.addUser(u)
	return nil
}

func (s *stubRepo) GetTeamByID(_ context.Context, id uuid.UUID) (repo.Team, error) {
	team, ok := s.teams[id]
	if !ok {
		return repo.Team{}, repo.ErrNotFound
	}
	return team, nil
}

func (s *stubRepo) ListSignalsByUser(_ context.Context, userID uuid.UUID, _ int) ([]repo.Signal, error) {
	return s.signals[userID], nil
}

func (s *stubRepo) ListNudgesByUser(_ context.Context, userID uuid.UUID, _ int) ([]repo.Nudge, error) {
	return s.nudges[userID], nil
}

func (s *stubRepo) MarkNudgeRead(_ context.Context, userID, nudgeID uuid.UUID) error {
	for i, nudge := range s.nudges[userID] {
		if nudge.ID == nudgeID {
			s.nudges[userID][i].Read = true
			return nil
		}
	}
	return repo.ErrNotFound
}

func (s *stubRepo) GetRefreshTokenByHash(_ context.Context, hash string) (repo.RefreshToken, error) {
	token, ok := s.tokens[hash]
	if !ok {
		return repo.RefreshToken{}, repo.ErrNotFound
	}
	return token, nil
}

func (s *stubRepo) InsertRefreshToken(_ context.Context, arg repo.InsertRefreshTokenParams) (repo.RefreshToken, error) {
	token := repo.RefreshToken{
		ID:        arg.ID,
		Subject:   arg.Subject,
		TokenHash: arg.TokenHash,
		ExpiresAt: arg.ExpiresAt,
		CreatedAt: arg.CreatedAt,
	}
	s.tokens[arg.TokenHash] = token
	return token, nil
}

func (s *stubRepo) InvalidateOtherRefreshTokens(_ context.Context, subject uuid.UUID, keepHash string) error {
	for hash, token := range s.tokens {
		if token.Subject == subject && hash != keepHash {
			token.Revoked = true
			s.tokens[hash] = token
		}
	}
	return nil
}

func (s *stubRepo) RevokeRefreshToken(_ context.Context, hash string) error {
	token, ok := s.tokens[hash]
	if !ok {
		return repo.ErrNotFound
	}
	token.Revoked = true
	s.tokens[hash] = token
	return nil
}

type fakeRedis struct {
	data map[string]string
}

func newFakeRedis() *fakeRedis { return &fakeRedis{data: map[string]string{}} }

func (f *fakeRedis) Set(ctx context.Context, key string, value any, _ time.Duration) *redis.StatusCmd {
	f.data[key] = fmt.Sprint(value)
	cmd := redis.NewStatusCmd(ctx)
	cmd.SetVal("OK")
	return cmd
}

func (f *fakeRedis) Get(ctx context.Context, key string) *redis.StringCmd {
	cmd := redis.NewStringCmd(ctx)
	if val, ok := f.data[key]; ok {
		cmd.SetVal(val)
	} else {
		cmd.SetErr(redis.Nil)
	}
	return cmd
}

func (f *fakeRedis) Del(ctx context.Context, keys ...string) *redis.IntCmd {
	cmd := redis.NewIntCmd(ctx)
	for _, key := range keys {
		delete(f.data, key)
	}
	return cmd
}

type apiTest struct {
	srv      *httptest.Server
	repo     *stubRepo
	employee repo.User
	manager  repo.User
}

func newAPITest(t *testing.T) *apiTest {
	t.Helper()

	repository := newStubRepo()

	hash, err := auth.Hash("secret123")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}

	team := repo.Team{ID: uuid.New(), Name: "Product", CreatedAt: util.Now()}
	repository.teams[team.ID] = team

	employee := repo.User{
		ID:           uuid.New(),
		Email:        "employee@tend.dev",
		PasswordHash: hash,
		FullName:     "Ollie Employee",
		Role:         wellbeing.RoleEmployee,
		IsActive:     true,
		Preferences:  wellbeing.DefaultPreferences(wellbeing.RoleEmployee),
		TeamID:       &team.ID,
		CreatedAt:    util.Now(),
	}
	manager := repo.User{
		ID:           uuid.New(),
		Email:        "manager@tend.dev",
		PasswordHash: hash,
		FullName:     "Morgan Manager",
		Role:         wellbeing.RoleManager,
		IsActive:     true,
		Preferences:  wellbeing.DefaultPreferences(wellbeing.RoleManager),
		TeamID:       &team.ID,
		CreatedAt:    util.Now(),
	}
	repository.addUser(employee)
	repository.addUser(manager)

	repository.nudges[employee.ID] = []repo.Nudge{
		{ID: uuid.New(), UserID: employee.ID, Message: "Take a break", CreatedAt: util.Now()},
	}

	cfg := &config.Config{
		Port:            8080,
		JWTSecret:       "test-secret-with-at-least-32-characters",
		JWTAccessTTL:    time.Minute,
		JWTRefreshTTL:   time.Hour,
		AllowOrigins:    []string{"http://localhost:3000"},
		BackendURL:      "http://localhost:8080",
		FrontendURL:     "http://localhost:3000",
		RateLimitPublic: config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
		RateLimitAuth:   config.RateLimitConfig{RequestsPerSecond: 1000, Burst: 1000},
	}

	jwtMgr := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTAccessTTL)
	authService := service.NewAuthService(repository, newFakeRedis(), jwtMgr, cfg.JWTRefreshTTL)
	userService := service.NewUserService(repository)
	insightsService := service.NewInsightsService(repository)

	srv := httptest.NewServer(NewRouter(cfg, authService, userService, insightsService))
	t.Cleanup(srv.Close)

	return &apiTest{srv: srv, repo: repository, employee: employee, manager: manager}
}

func (a *apiTest) login(t *testing.T, email string) string {
	t.Helper()

	form := url.Values{"username": {email}, "password": {"secret123"}}
	resp, err := http.PostForm(a.srv.URL+"/api/v1/auth/login", form)
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		t.Fatalf("login status = %d, body %s", resp.StatusCode, body)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if payload.TokenType != "bearer" {
		t.Fatalf("token_type = %q, want bearer", payload.TokenType)
	}
	return payload.AccessToken
}

func (a *apiTest) request(t *testing.T, method, path, token string, body any) (*http.Response, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequest(method, a.srv.URL+path, reader)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	defer resp.Body.Close()
	raw, _ := io.ReadAll(resp.Body)
	return resp, raw
}

func detailOf(t *testing.T, raw []byte) string {
	t.Helper()
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		t.Fatalf("decode detail from %s: %v", raw, err)
	}
	return payload.Detail
}

func TestHealth(t *testing.T) {
	a := newAPITest(t)

	resp, raw := a.request(t, http.MethodGet, "/health", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d", resp.StatusCode)
	}
	if !strings.Contains(string(raw), "healthy") {
		t.Fatalf("body = %s", raw)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	a := newAPITest(t)

	form := url.Values{"username": {"employee@tend.dev"}, "password": {"nope"}}
	resp, err := http.PostForm(a.srv.URL+"/api/v1/auth/login", form)
	if err != nil {
		t.Fatalf("request: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	raw, _ := io.ReadAll(resp.Body)
	if got := detailOf(t, raw); got != "Incorrect email or password" {
		t.Fatalf("detail = %q", got)
	}
}

func TestMeRequiresToken(t *testing.T) {
	a := newAPITest(t)

	resp, raw := a.request(t, http.MethodGet, "/api/v1/users/me", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
	if got := detailOf(t, raw); got != "Not authenticated" {
		t.Fatalf("detail = %q", got)
	}
}

func TestMeReturnsProfile(t *testing.T) {
	a := newAPITest(t)
	token := a.login(t, "employee@tend.dev")

	resp, raw := a.request(t, http.MethodGet, "/api/v1/users/me", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var profile service.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Email != "employee@tend.dev" || profile.Role != wellbeing.RoleEmployee {
		t.Fatalf("profile = %+v", profile)
	}
}

func TestUpdateMeRejectsInvalidRole(t *testing.T) {
	a := newAPITest(t)
	token := a.login(t, "employee@tend.dev")

	resp, raw := a.request(t, http.MethodPatch, "/api/v1/users/me", token,
		map[string]string{"role": "superuser"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if got := detailOf(t, raw); got != "invalid role" {
		t.Fatalf("detail = %q", got)
	}
}

func TestUpdateMeStampsConsent(t *testing.T) {
	a := newAPITest(t)
	token := a.login(t, "employee@tend.dev")

	resp, raw := a.request(t, http.MethodPatch, "/api/v1/users/me", token,
		map[string]any{"data_consent_given": true, "onboarding_completed": true})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}

	var profile service.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !profile.DataConsentGiven || profile.DataConsentUpdatedAt == nil {
		t.Fatalf("consent not stamped: %+v", profile)
	}
	if !profile.OnboardingCompleted {
		t.Fatal("onboarding should be completed")
	}
}

func TestTeamMetricsRoleGate(t *testing.T) {
	a := newAPITest(t)

	employeeToken := a.login(t, "employee@tend.dev")
	resp, raw := a.request(t, http.MethodGet, "/api/v1/teams/my/metrics", employeeToken, nil)
	if resp.StatusCode != http.StatusForbidden {
		t.Fatalf("employee status = %d, want 403", resp.StatusCode)
	}
	if got := detailOf(t, raw); got != "Not enough permissions" {
		t.Fatalf("detail = %q", got)
	}

	managerToken := a.login(t, "manager@tend.dev")
	resp, raw = a.request(t, http.MethodGet, "/api/v1/teams/my/metrics", managerToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("manager status = %d, body %s", resp.StatusCode, raw)
	}

	var metrics []json.RawMessage
	if err := json.Unmarshal(raw, &metrics); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(metrics) != 4 {
		t.Fatalf("expected 4 team dimensions, got %d", len(metrics))
	}
}

func TestIntegrationStatus(t *testing.T) {
	a := newAPITest(t)
	token := a.login(t, "employee@tend.dev")

	resp, raw := a.request(t, http.MethodGet, "/api/v1/integrations/slack/status", token, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, body %s", resp.StatusCode, raw)
	}
	var status service.IntegrationStatus
	if err := json.Unmarshal(raw, &status); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if status.Connected {
		t.Fatal("slack should start disconnected")
	}

	resp, raw = a.request(t, http.MethodGet, "/api/v1/integrations/teams/status", token, nil)
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("unknown provider status = %d, want 400", resp.StatusCode)
	}
	if got := detailOf(t, raw); got != "Unsupported provider" {
		t.Fatalf("detail = %q", got)
	}
}

func TestNudgeReadScopedToOwner(t *testing.T) {
	a := newAPITest(t)

	nudgeID := a.repo.nudges[a.employee.ID][0].ID

	managerToken := a.login(t, "manager@tend.dev")
	resp, _ := a.request(t, http.MethodPost, "/api/v1/nudges/"+nudgeID.String()+"/read", managerToken, nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("other user's nudge status = %d, want 404", resp.StatusCode)
	}

	employeeToken := a.login(t, "employee@tend.dev")
	resp, _ = a.request(t, http.MethodPost, "/api/v1/nudges/"+nudgeID.String()+"/read", employeeToken, nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("own nudge status = %d, want 200", resp.StatusCode)
	}
	if !a.repo.nudges[a.employee.ID][0].Read {
		t.Fatal("nudge should be marked read")
	}
}

func TestRegisterAndLoginFlow(t *testing.T) {
	a := newAPITest(t)

	resp, raw := a.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     "new@tend.dev",
		"password":  "secret123",
		"full_name": "New User",
		"role":      "individual",
	})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status = %d, body %s", resp.StatusCode, raw)
	}

	var profile service.Profile
	if err := json.Unmarshal(raw, &profile); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if profile.Role != wellbeing.RoleEmployee {
		t.Fatalf("role = %v, the individual alias should map to employee", profile.Role)
	}

	a.login(t, "new@tend.dev")

	resp, raw = a.request(t, http.MethodPost, "/api/v1/auth/register", "", map[string]string{
		"email":     "new@tend.dev",
		"password":  "secret123",
		"full_name": "Dup",
	})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, want 400", resp.StatusCode)
	}
	if got := detailOf(t, raw); got != "Email already registered" {
		t.Fatalf("detail = %q", got)
	}
}
