// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
)

type SessionHandler struct {
	store *store.Store
	gate  *auth.Gate
	clock clock.Clock
	cfg   cliparse.Config
}

func NewSessionHandler(s *store.Store, gate *auth.Gate, c clock.Clock, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: s, gate: gate, clock: c, cfg: cfg}
}

// Login handles POST /login
func (h *SessionHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	user, token, isNew, err := h.gate.LoginOrRegister(r.Context(), req.LoginName())
	if err != nil {
		respondError(w, err, "log in")
		return
	}

	middleware.SetSessionCookie(w, token, h.clock.Now().Add(h.cfg.SessionTTL), h.cfg.CookieSecure)

	kind := "returning"
	if isNew {
		kind = "new"
	}
	slog.Info("user logged in", "user_id", user.ID, "new_user", isNew)

	middleware.JSONResponse(w, http.StatusOK, models.LoginResponse{
		User:         user,
		SessionToken: token,
		IsNew:        isNew,
		Message:      fmt.Sprintf("Successfully logged in as %s user %s with ID %s", kind, user.Name, user.ID),
	})
}

// Logout handles POST /logout
func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	existed, err := h.gate.Logout(r.Context(), middleware.SessionToken(r))
	if err != nil {
		respondError(w, err, "log out")
		return
	}

	middleware.ClearSessionCookie(w, h.cfg.CookieSecure)

	if !existed {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "You are not logged in")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "Successfully logged out"})
}

// Current handles GET /users/current
func (h *SessionHandler) Current(w http.ResponseWriter, r *http.Request) {
	user, err := h.gate.RequireLogin(r.Context(), middleware.SessionToken(r))
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			middleware.ErrorResponse(w, http.StatusUnauthorized, "You must be logged in to see this page")
			return
		}
		respondError(w, err, "load current user")
		return
	}

	votes, err := h.store.VotesByUser(r.Context(), user.ID)
	if err != nil {
		respondError(w, err, "load current user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserDetailResponse{
		User:  userResponse(*user, len(votes), h.clock.Now()),
		Votes: votes,
	})
}
