// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/validate"
)

type UserHandler struct {
	store     *store.Store
	gate      *auth.Gate
	validator *validate.Validator
	clock     clock.Clock
	cfg       cliparse.Config
}

func NewUserHandler(s *store.Store, gate *auth.Gate, v *validate.Validator, c clock.Clock, cfg cliparse.Config) *UserHandler {
	return &UserHandler{store: s, gate: gate, validator: v, clock: c, cfg: cfg}
}

// userResponse adds the humanized join date, e.g. "3 days ago".
func userResponse(u models.User, voteCount int, now time.Time) models.UserResponse {
	return models.UserResponse{
		User:      u,
		Joined:    humanize.RelTime(u.JoinDate, now, "ago", "from now"),
		VoteCount: voteCount,
	}
}

// List handles GET /users
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.ListUsers(r.Context())
	if err != nil {
		respondError(w, err, "list users")
		return
	}

	counts, err := h.store.VoteCountsByUser(r.Context())
	if err != nil {
		respondError(w, err, "list users")
		return
	}

	now := h.clock.Now()
	resp := make([]models.UserResponse, len(users))
	for i, u := range users {
		resp[i] = userResponse(u, counts[u.ID], now)
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}

// Create handles POST /users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !authorizeWrite(w, r, h.gate, h.cfg, "create user") {
		return
	}

	var req models.CreateUserRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.validator.User(req)
	if err != nil {
		respondError(w, err, "create user")
		return
	}

	user, err := h.store.CreateUser(r.Context(), candidate)
	if err != nil {
		respondError(w, err, "create user")
		return
	}

	slog.Info("user created", "user_id", user.ID, "name", user.Name)

	w.Header().Set("Location", "/users/"+user.ID)
	middleware.JSONResponse(w, http.StatusCreated, userResponse(user, 0, h.clock.Now()))
}

// Show handles GET /users/{id}
func (h *UserHandler) Show(w http.ResponseWriter, r *http.Request) {
	userID := r.PathValue("id")

	user, err := h.store.GetUser(r.Context(), userID)
	if err != nil {
		respondError(w, err, "load user")
		return
	}

	votes, err := h.store.VotesByUser(r.Context(), userID)
	if err != nil {
		respondError(w, err, "load user")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.UserDetailResponse{
		User:  userResponse(user, len(votes), h.clock.Now()),
		Votes: votes,
	})
}

// Delete handles DELETE /users/{id}
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authorizeWrite(w, r, h.gate, h.cfg, "delete user") {
		return
	}

	userID := r.PathValue("id")
	if err := h.store.DeleteUser(r.Context(), userID); err != nil {
		respondError(w, err, "delete user")
		return
	}

	slog.Info("user deleted", "user_id", userID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("User (ID %s) successfully deleted.", userID),
	})
}
