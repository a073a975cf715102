package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/openn02/Tend/internal/service"
	"github.com/openn02/Tend/internal/util"
	"github.com/openn02/Tend/internal/wellbeing"
)

// Login authenticates form-encoded credentials and returns a token pair.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid form payload")
		return
	}

	username := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if username == "" || password == "" {
		WriteDetail(w, http.StatusBadRequest, "username and password are required")
		return
	}

	result, err := h.authService.Login(r.Context(), username, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			WriteDetail(w, http.StatusUnauthorized, "Incorrect email or password")
		case errors.Is(err, service.ErrAccountDisabled):
			WriteDetail(w, http.StatusForbidden, "Account is disabled")
		default:
			WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		}
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "bearer",
	})
}

// Register creates a new account.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
		Role     string `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := util.ValidateEmail(payload.Email); err != nil {
		WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.ValidatePassword(payload.Password); err != nil {
		WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := util.RequireString(payload.FullName, "full_name"); err != nil {
		WriteDetail(w, http.StatusBadRequest, err.Error())
		return
	}

	role := wellbeing.RoleEmployee
	if payload.Role != "" {
		parsed, ok := wellbeing.ParseRole(payload.Role)
		if !ok {
			WriteDetail(w, http.StatusBadRequest, "invalid role")
			return
		}
		role = parsed
	}

	profile, err := h.authService.Register(r.Context(), service.RegisterInput{
		Email:    payload.Email,
		Password: payload.Password,
		FullName: payload.FullName,
		Role:     role,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			WriteDetail(w, http.StatusBadRequest, "Email already registered")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusCreated, profile)
}

// Refresh rotates a refresh token.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	result, err := h.authService.Refresh(r.Context(), payload.RefreshToken)
	if err != nil {
		if errors.Is(err, service.ErrRefreshInvalid) || errors.Is(err, service.ErrAccountDisabled) {
			WriteDetail(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{
		"access_token":  result.AccessToken,
		"refresh_token": result.RefreshToken,
		"token_type":    "bearer",
	})
}

// Logout revokes the presented refresh token.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	var payload struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	if err := h.authService.Logout(r.Context(), payload.RefreshToken); err != nil {
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]any{"message": "logged out"})
}
