package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/openn02/Tend/internal/wellbeing"
)

// TokenSource supplies the bearer token for authenticated calls.
type TokenSource interface {
	Token() (string, bool)
}

// APIError is a non-success response with the server's detail message.
type APIError struct {
	Status int
	Detail string
}

func (e *APIError) Error() string {
	if strings.TrimSpace(e.Detail) == "" {
		return fmt.Sprintf("api: status %d", e.Status)
	}
	return e.Detail
}

// IsUnauthorized reports whether err is a 401 from the API.
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}

// Client calls the Tend API from the dashboard side. All requests go to one
// configurable base URL.
type Client struct {
	httpClient *http.Client
	baseURL    string
	tokens     TokenSource
}

// New creates a client. tokens may be nil for unauthenticated use.
func New(baseURL string, timeout time.Duration, tokens TokenSource) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		tokens:     tokens,
	}
}

// TokenPair is the login/refresh response.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Profile is the profile contract the dashboard consumes.
type Profile struct {
	ID                  string                `json:"id"`
	Email               string                `json:"email"`
	FullName            string                `json:"full_name"`
	Role                wellbeing.Role        `json:"role"`
	DataConsentGiven    bool                  `json:"data_consent_given"`
	Preferences         wellbeing.Preferences `json:"preferences"`
	OnboardingCompleted bool                  `json:"onboarding_completed"`
	SlackUserID         *string               `json:"slack_user_id,omitempty"`
	GoogleUserID        *string               `json:"google_user_id,omitempty"`
	ZoomUserID          *string               `json:"zoom_user_id,omitempty"`
}

// ProfileUpdate is a partial profile patch; nil fields are omitted.
type ProfileUpdate struct {
	FullName            *string                `json:"full_name,omitempty"`
	Role                *wellbeing.Role        `json:"role,omitempty"`
	DataConsentGiven    *bool                  `json:"data_consent_given,omitempty"`
	Preferences         *wellbeing.Preferences `json:"preferences,omitempty"`
	OnboardingCompleted *bool                  `json:"onboarding_completed,omitempty"`
}

// IntegrationStatus mirrors the per-provider status payload.
type IntegrationStatus struct {
	Connected bool       `json:"connected"`
	LastSync  *time.Time `json:"last_sync,omitempty"`
}

// RegisterRequest carries a registration payload.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// Login posts form-encoded credentials and returns the token pair.
func (c *Client) Login(ctx context.Context, email, password string) (TokenPair, error) {
	form := url.Values{}
	form.Set("username", email)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		c.baseURL+"/api/v1/auth/login", strings.NewReader(form.Encode()))
	if err != nil {
		return TokenPair{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var pair TokenPair
	if err := c.do(req, &pair); err != nil {
		return TokenPair{}, err
	}
	return pair, nil
}

// Register posts a JSON registration payload.
func (c *Client) Register(ctx context.Context, in RegisterRequest) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/v1/auth/register", in)
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Logout revokes a refresh token server-side.
func (c *Client) Logout(ctx context.Context, refreshToken string) error {
	req, err := c.newJSONRequest(ctx, http.MethodPost, "/api/v1/auth/logout",
		map[string]string{"refresh_token": refreshToken})
	if err != nil {
		return err
	}
	return c.do(req, nil)
}

// Me fetches the authenticated profile.
func (c *Client) Me(ctx context.Context) (Profile, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/v1/users/me", nil)
	if err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := c.do(req, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// UpdateMe applies a partial profile update.
func (c *Client) UpdateMe(ctx context.Context, update ProfileUpdate) (Profile, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPatch, "/api/v1/users/me", update)
	if err != nil {
		return Profile{}, err
	}

	var profile Profile
	if err := c.do(req, &profile); err != nil {
		return Profile{}, err
	}
	return profile, nil
}

// IntegrationStatus fetches one provider's connection status.
func (c *Client) IntegrationStatus(ctx context.Context, provider string) (IntegrationStatus, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/v1/integrations/"+url.PathEscape(provider)+"/status", nil)
	if err != nil {
		return IntegrationStatus{}, err
	}

	var status IntegrationStatus
	if err := c.do(req, &status); err != nil {
		return IntegrationStatus{}, err
	}
	return status, nil
}

// IntegrationAuthURL fetches the provider authorization URL for the OAuth
// handoff.
func (c *Client) IntegrationAuthURL(ctx context.Context, provider string) (string, error) {
	req, err := c.newJSONRequest(ctx, http.MethodGet, "/api/v1/integrations/"+url.PathEscape(provider)+"/auth", nil)
	if err != nil {
		return "", err
	}

	var payload struct {
		AuthURL string `json:"auth_url"`
	}
	if err := c.do(req, &payload); err != nil {
		return "", err
	}
	return payload.AuthURL, nil
}

func (c *Client) newJSONRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, err
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req, nil
}

func (c *Client) do(req *http.Request, v any) error {
	req.Header.Set("Accept", "application/json")
	if c.tokens != nil {
		if token, ok := c.tokens.Token(); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var detail struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&detail)
		return &APIError{Status: resp.StatusCode, Detail: detail.Detail}
	}

	if v == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(v)
}
