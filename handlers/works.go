// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/metrics"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/validate"
)

type WorkHandler struct {
	store     *store.Store
	gate      *auth.Gate
	validator *validate.Validator
	metrics   *metrics.Metrics
	cfg       cliparse.Config
}

func NewWorkHandler(s *store.Store, gate *auth.Gate, v *validate.Validator, m *metrics.Metrics, cfg cliparse.Config) *WorkHandler {
	return &WorkHandler{store: s, gate: gate, validator: v, metrics: m, cfg: cfg}
}

// List handles GET /works, optionally filtered by ?category=
func (h *WorkHandler) List(w http.ResponseWriter, r *http.Request) {
	category := strings.TrimSpace(r.URL.Query().Get("category"))
	if category != "" && !models.IsValidCategory(category) {
		respondError(w, models.ErrInvalidCategory, "list works")
		return
	}

	works, err := h.store.ListWorks(r.Context(), category)
	if err != nil {
		respondError(w, err, "list works")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, works)
}

// Create handles POST /works
func (h *WorkHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !authorizeWrite(w, r, h.gate, h.cfg, "create work") {
		return
	}

	var req models.WorkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	candidate, err := h.validator.Work(req)
	if err != nil {
		respondError(w, err, "create work")
		return
	}

	work, err := h.store.CreateWork(r.Context(), candidate)
	if err != nil {
		respondError(w, err, "create work")
		return
	}

	slog.Info("work created", "work_id", work.ID, "category", work.Category, "title", work.Title)

	w.Header().Set("Location", "/works/"+work.ID)
	middleware.JSONResponse(w, http.StatusCreated, work)
}

// Show handles GET /works/{id}
func (h *WorkHandler) Show(w http.ResponseWriter, r *http.Request) {
	workID := r.PathValue("id")

	work, err := h.store.GetWork(r.Context(), workID)
	if err != nil {
		respondError(w, err, "load work")
		return
	}

	votes, err := h.store.VotesForWork(r.Context(), workID)
	if err != nil {
		respondError(w, err, "load work")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.WorkDetailResponse{
		Work:      work,
		VoteCount: len(votes),
		Votes:     votes,
	})
}

// Update handles PATCH and PUT /works/{id}. Omitted fields keep their
// current values; the merged work is validated as a whole.
func (h *WorkHandler) Update(w http.ResponseWriter, r *http.Request) {
	if !authorizeWrite(w, r, h.gate, h.cfg, "update work") {
		return
	}

	workID := r.PathValue("id")

	var req models.UpdateWorkRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	existing, err := h.store.GetWork(r.Context(), workID)
	if err != nil {
		respondError(w, err, "update work")
		return
	}

	candidate, err := h.validator.Work(validate.MergeWork(existing, req))
	if err != nil {
		respondError(w, err, "update work")
		return
	}
	candidate.ID = workID

	work, err := h.store.UpdateWork(r.Context(), candidate)
	if err != nil {
		respondError(w, err, "update work")
		return
	}

	slog.Info("work updated", "work_id", work.ID)

	w.Header().Set("Location", "/works/"+work.ID)
	middleware.JSONResponse(w, http.StatusOK, work)
}

// Delete handles DELETE /works/{id}
func (h *WorkHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if !authorizeWrite(w, r, h.gate, h.cfg, "delete work") {
		return
	}

	workID := r.PathValue("id")

	work, err := h.store.GetWork(r.Context(), workID)
	if err != nil {
		respondError(w, err, "delete work")
		return
	}

	if err := h.store.DeleteWork(r.Context(), workID); err != nil {
		respondError(w, err, "delete work")
		return
	}

	slog.Info("work deleted", "work_id", workID, "category", work.Category)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: fmt.Sprintf("%s (ID %s) successfully deleted.", capitalize(work.Category), workID),
	})
}

// Upvote handles POST /works/{id}/upvote. Always requires a session.
func (h *WorkHandler) Upvote(w http.ResponseWriter, r *http.Request) {
	workID := r.PathValue("id")

	user, err := h.gate.RequireLogin(r.Context(), middleware.SessionToken(r))
	if err != nil {
		if errors.Is(err, auth.ErrNotAuthenticated) {
			h.metrics.VoteRejections.WithLabelValues(metrics.ReasonNotAuthenticated).Inc()
		}
		respondError(w, err, "upvote")
		return
	}

	vote, err := h.store.CastVote(r.Context(), workID, user.ID)
	if err != nil {
		switch {
		case errors.Is(err, store.ErrDuplicateVote):
			h.metrics.VoteRejections.WithLabelValues(metrics.ReasonDuplicate).Inc()
		case errors.Is(err, store.ErrWorkNotFound):
			h.metrics.VoteRejections.WithLabelValues(metrics.ReasonWorkNotFound).Inc()
		case errors.Is(err, store.ErrInvalidUser):
			h.metrics.VoteRejections.WithLabelValues(metrics.ReasonInvalidUser).Inc()
		}
		respondError(w, err, "upvote")
		return
	}

	// Category label only; the vote itself is already committed.
	if work, err := h.store.GetWork(r.Context(), workID); err == nil {
		h.metrics.VotesTotal.WithLabelValues(work.Category).Inc()
	}

	count, err := h.store.CountVotesForWork(r.Context(), workID)
	if err != nil {
		respondError(w, err, "upvote")
		return
	}

	slog.Info("vote cast", "vote_id", vote.ID, "work_id", workID, "user_id", user.ID)

	middleware.JSONResponse(w, http.StatusCreated, models.VoteResponse{
		Vote:      vote,
		VoteCount: count,
		Message:   "Successfully upvoted!",
	})
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
