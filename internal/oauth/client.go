package oauth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client performs the server-side half of the OAuth handoff: code exchange
// and provider identity lookup.
type Client struct {
	httpClient *http.Client
	registry   *Registry
}

// NewClient creates the client over a registry.
func NewClient(registry *Registry) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		registry:   registry,
	}
}

// ExchangeCode trades an authorization code for the provider access token.
func (c *Client) ExchangeCode(ctx context.Context, provider, code string) (string, error) {
	p, err := c.registry.Lookup(provider)
	if err != nil {
		return "", err
	}

	form := url.Values{}
	form.Set("client_id", p.ClientID)
	form.Set("client_secret", p.ClientSecret)
	form.Set("code", code)
	form.Set("redirect_uri", p.RedirectURI)
	form.Set("grant_type", "authorization_code")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s token endpoint: status %d", provider, resp.StatusCode)
	}

	var payload struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}
	if payload.Error != "" {
		return "", errors.New(provider + " token endpoint: " + payload.Error)
	}
	if payload.AccessToken == "" {
		return "", errors.New(provider + " token endpoint: empty access token")
	}
	return payload.AccessToken, nil
}

// Identity resolves the provider-side account id for an access token.
func (c *Client) Identity(ctx context.Context, provider, accessToken string) (string, error) {
	p, err := c.registry.Lookup(provider)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.IdentityURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", fmt.Errorf("%s identity endpoint: status %d", provider, resp.StatusCode)
	}

	var payload map[string]any
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", err
	}

	id, _ := payload[p.IdentityField].(string)
	if id == "" {
		return "", errors.New(provider + " identity endpoint: missing " + p.IdentityField)
	}
	return id, nil
}
