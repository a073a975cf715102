package http

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/openn02/Tend/internal/oauth"
	"github.com/openn02/Tend/internal/service"
)

// IntegrationStatus reports whether a provider is connected for the user.
func (h *Handler) IntegrationStatus(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	provider := chi.URLParam(r, "provider")
	status, err := h.users.IntegrationStatus(r.Context(), subject, provider)
	if err != nil {
		if errors.Is(err, service.ErrUnsupportedProvider) {
			WriteDetail(w, http.StatusBadRequest, "Unsupported provider")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, status)
}

// IntegrationAuth returns the provider authorization URL for the OAuth
// handoff; the dashboard performs the actual navigation.
func (h *Handler) IntegrationAuth(w http.ResponseWriter, r *http.Request) {
	provider := chi.URLParam(r, "provider")

	authURL, err := h.oauthRegistry.AuthorizeURL(provider)
	if err != nil {
		if errors.Is(err, oauth.ErrUnknownProvider) {
			WriteDetail(w, http.StatusBadRequest, "Unsupported provider")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"auth_url": authURL})
}

// IntegrationCallback exchanges the authorization code, links the provider
// account and redirects back to the dashboard settings page with the outcome.
func (h *Handler) IntegrationCallback(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	provider := chi.URLParam(r, "provider")
	code := r.URL.Query().Get("code")
	if code == "" {
		WriteDetail(w, http.StatusBadRequest, "missing authorization code")
		return
	}

	redirect := func(status, message string) {
		q := url.Values{}
		q.Set("integration", provider)
		q.Set("status", status)
		if message != "" {
			q.Set("message", message)
		}
		http.Redirect(w, r, h.frontendURL+"/settings?"+q.Encode(), http.StatusTemporaryRedirect)
	}

	accessToken, err := h.oauthClient.ExchangeCode(r.Context(), provider, code)
	if err != nil {
		if errors.Is(err, oauth.ErrUnknownProvider) {
			WriteDetail(w, http.StatusBadRequest, "Unsupported provider")
			return
		}
		log.Error().Err(err).Str("provider", provider).Msg("oauth code exchange failed")
		redirect("error", "token exchange failed")
		return
	}

	providerUserID, err := h.oauthClient.Identity(r.Context(), provider, accessToken)
	if err != nil {
		log.Error().Err(err).Str("provider", provider).Msg("oauth identity lookup failed")
		redirect("error", "identity lookup failed")
		return
	}

	if err := h.users.LinkProviderAccount(r.Context(), subject, provider, providerUserID); err != nil {
		log.Error().Err(err).Str("provider", provider).Msg("linking provider account failed")
		redirect("error", "could not store integration")
		return
	}

	redirect("success", "")
}
