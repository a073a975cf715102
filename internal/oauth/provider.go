package oauth

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/openn02/Tend/internal/config"
)

// ErrUnknownProvider is returned for providers outside the registry.
var ErrUnknownProvider = errors.New("unsupported provider")

// Provider describes one OAuth integration target.
type Provider struct {
	Name          string
	ClientID      string
	ClientSecret  string
	AuthURL       string
	TokenURL      string
	IdentityURL   string
	IdentityField string
	Scope         string
	RedirectURI   string
}

// Registry holds the configured providers keyed by name.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry builds the provider table from configuration. Redirect URIs
// point back at the API's own callback endpoints.
func NewRegistry(cfg config.OAuthConfig, backendURL string) *Registry {
	redirect := func(name string) string {
		return fmt.Sprintf("%s/api/v1/integrations/%s/callback", backendURL, name)
	}

	return &Registry{providers: map[string]Provider{
		"google": {
			Name:          "google",
			ClientID:      cfg.Google.ClientID,
			ClientSecret:  cfg.Google.ClientSecret,
			AuthURL:       "https://accounts.google.com/o/oauth2/v2/auth",
			TokenURL:      "https://oauth2.googleapis.com/token",
			IdentityURL:   "https://www.googleapis.com/oauth2/v2/userinfo",
			IdentityField: "id",
			Scope:         "https://www.googleapis.com/auth/calendar https://www.googleapis.com/auth/calendar.events",
			RedirectURI:   redirect("google"),
		},
		"slack": {
			Name:          "slack",
			ClientID:      cfg.Slack.ClientID,
			ClientSecret:  cfg.Slack.ClientSecret,
			AuthURL:       "https://slack.com/oauth/v2/authorize",
			TokenURL:      "https://slack.com/api/oauth.v2.access",
			IdentityURL:   "https://slack.com/api/auth.test",
			IdentityField: "user_id",
			Scope:         "chat:write channels:read channels:join",
			RedirectURI:   redirect("slack"),
		},
		"zoom": {
			Name:          "zoom",
			ClientID:      cfg.Zoom.ClientID,
			ClientSecret:  cfg.Zoom.ClientSecret,
			AuthURL:       "https://zoom.us/oauth/authorize",
			TokenURL:      "https://zoom.us/oauth/token",
			IdentityURL:   "https://api.zoom.us/v2/users/me",
			IdentityField: "id",
			Scope:         "meeting:write meeting:read",
			RedirectURI:   redirect("zoom"),
		},
	}}
}

// Lookup resolves a provider by name.
func (r *Registry) Lookup(name string) (Provider, error) {
	p, ok := r.providers[name]
	if !ok {
		return Provider{}, ErrUnknownProvider
	}
	return p, nil
}

// AuthorizeURL builds the user-facing authorization URL for a provider.
func (r *Registry) AuthorizeURL(name string) (string, error) {
	p, err := r.Lookup(name)
	if err != nil {
		return "", err
	}

	q := url.Values{}
	q.Set("client_id", p.ClientID)
	q.Set("redirect_uri", p.RedirectURI)
	q.Set("scope", p.Scope)
	q.Set("response_type", "code")
	return p.AuthURL + "?" + q.Encode(), nil
}
