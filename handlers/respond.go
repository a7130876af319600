// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/validate"
)

const msgNotLoggedIn = "You must be logged in to perform that action."

// respondError maps a domain error to its HTTP status. action completes the
// sentence "Could not ..." and names the failed operation in logs.
func respondError(w http.ResponseWriter, err error, action string) {
	var verrs validate.Errors
	switch {
	case errors.As(err, &verrs):
		middleware.ValidationErrorResponse(w, "A problem occurred: Could not "+action, verrs)
	case errors.Is(err, models.ErrInvalidCategory):
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid category")
	case errors.Is(err, store.ErrUserNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "User not found")
	case errors.Is(err, store.ErrWorkNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, "Work not found")
	case errors.Is(err, store.ErrDuplicateVote):
		middleware.ErrorResponse(w, http.StatusConflict, "Error. Only one vote is allowed per user, per work.")
	case errors.Is(err, auth.ErrNotAuthenticated), errors.Is(err, store.ErrInvalidUser):
		middleware.ErrorResponse(w, http.StatusUnauthorized, msgNotLoggedIn)
	default:
		slog.Error("failed to "+action, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
	}
}

// authorizeWrite enforces the RequireLoginForWrites policy. It writes the
// error response and returns false when the request may not proceed.
func authorizeWrite(w http.ResponseWriter, r *http.Request, gate *auth.Gate, cfg cliparse.Config, action string) bool {
	if !cfg.RequireLoginForWrites {
		return true
	}
	if _, err := gate.RequireLogin(r.Context(), middleware.SessionToken(r)); err != nil {
		respondError(w, err, action)
		return false
	}
	return true
}
