package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	httpmiddleware "github.com/openn02/Tend/internal/http/middleware"
	"github.com/openn02/Tend/internal/repo"
	"github.com/openn02/Tend/internal/service"
	"github.com/openn02/Tend/internal/wellbeing"
)

func subjectFromContext(r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(httpmiddleware.GetSubject(r.Context()))
	return id, err == nil
}

// Me returns the authenticated user's profile.
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	profile, err := h.users.GetMe(r.Context(), subject)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}

// UpdateMe applies a partial profile update.
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	var payload struct {
		FullName            *string                `json:"full_name"`
		Role                *string                `json:"role"`
		DataConsentGiven    *bool                  `json:"data_consent_given"`
		Preferences         *wellbeing.Preferences `json:"preferences"`
		OnboardingCompleted *bool                  `json:"onboarding_completed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	update := service.ProfileUpdate{
		FullName:            payload.FullName,
		DataConsentGiven:    payload.DataConsentGiven,
		Preferences:         payload.Preferences,
		OnboardingCompleted: payload.OnboardingCompleted,
	}
	if payload.Role != nil {
		role, ok := wellbeing.ParseRole(*payload.Role)
		if !ok {
			WriteDetail(w, http.StatusBadRequest, "invalid role")
			return
		}
		update.Role = &role
	}

	profile, err := h.users.UpdateMe(r.Context(), subject, update)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteDetail(w, http.StatusNotFound, "User not found")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, profile)
}
