package http

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/openn02/Tend/internal/repo"
	"github.com/openn02/Tend/internal/service"
)

// MySignals lists the authenticated user's signals.
func (h *Handler) MySignals(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	signals, err := h.insights.MySignals(r.Context(), subject, 100)
	if err != nil {
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, signals)
}

// MyNudges lists the authenticated user's nudges.
func (h *Handler) MyNudges(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	nudges, err := h.insights.MyNudges(r.Context(), subject, 100)
	if err != nil {
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, nudges)
}

// MarkNudgeRead flags one nudge as read.
func (h *Handler) MarkNudgeRead(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	nudgeID, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		WriteDetail(w, http.StatusBadRequest, "invalid nudge id")
		return
	}

	if err := h.insights.MarkNudgeRead(r.Context(), subject, nudgeID); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			WriteDetail(w, http.StatusNotFound, "Nudge not found")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, map[string]string{"message": "nudge marked as read"})
}

// MyTeam returns the authenticated user's team.
func (h *Handler) MyTeam(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	team, err := h.insights.MyTeam(r.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) || errors.Is(err, repo.ErrNotFound) {
			WriteDetail(w, http.StatusNotFound, "User is not part of any team")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, team)
}

// MyTeamMetrics returns anonymized team aggregates (managers and HR only;
// the role gate is applied in the router).
func (h *Handler) MyTeamMetrics(w http.ResponseWriter, r *http.Request) {
	subject, ok := subjectFromContext(r)
	if !ok {
		WriteDetail(w, http.StatusUnauthorized, "Could not validate credentials")
		return
	}

	metrics, err := h.insights.MyTeamMetrics(r.Context(), subject)
	if err != nil {
		if errors.Is(err, service.ErrNoTeam) || errors.Is(err, repo.ErrNotFound) {
			WriteDetail(w, http.StatusNotFound, "User is not part of any team")
			return
		}
		WriteDetail(w, http.StatusInternalServerError, "An unexpected error occurred")
		return
	}

	WriteJSON(w, http.StatusOK, metrics)
}
