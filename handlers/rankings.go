// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/danielhkuo/media-ranker/metrics"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/ranking"
)

type RankingHandler struct {
	engine  *ranking.Engine
	metrics *metrics.Metrics
}

func NewRankingHandler(engine *ranking.Engine, m *metrics.Metrics) *RankingHandler {
	return &RankingHandler{engine: engine, metrics: m}
}

// Home handles GET /: the spotlight plus the top ten of each category
func (h *RankingHandler) Home(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.metrics.ObserveRanking("home", start)

	spotlight, err := h.engine.Spotlight(r.Context())
	if err != nil {
		respondError(w, err, "load spotlight")
		return
	}

	board, err := h.engine.Leaderboard(r.Context(), ranking.DefaultTopN)
	if err != nil {
		respondError(w, err, "load top ten")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.HomeResponse{
		Spotlight: spotlight,
		TopTen:    board,
	})
}

// Spotlight handles GET /spotlight. The body is null on an empty catalog.
func (h *RankingHandler) Spotlight(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	defer h.metrics.ObserveRanking("spotlight", start)

	spotlight, err := h.engine.Spotlight(r.Context())
	if err != nil {
		respondError(w, err, "load spotlight")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, spotlight)
}

// Category handles GET /rankings/{category}, optionally capped by ?limit=n
func (h *RankingHandler) Category(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")

	limitStr := r.URL.Query().Get("limit")
	if limitStr == "" {
		start := time.Now()
		defer h.metrics.ObserveRanking("ordered_filter", start)

		works, err := h.engine.OrderedFilter(r.Context(), category)
		if err != nil {
			respondError(w, err, "rank "+category)
			return
		}
		middleware.JSONResponse(w, http.StatusOK, models.RankingResponse{Category: category, Works: works})
		return
	}

	limit, err := strconv.Atoi(limitStr)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "limit must be an integer")
		return
	}

	h.topN(w, r, category, limit)
}

// TopTen handles GET /rankings/{category}/top
func (h *RankingHandler) TopTen(w http.ResponseWriter, r *http.Request) {
	h.topN(w, r, r.PathValue("category"), ranking.DefaultTopN)
}

func (h *RankingHandler) topN(w http.ResponseWriter, r *http.Request, category string, n int) {
	start := time.Now()
	defer h.metrics.ObserveRanking("top_n", start)

	works, err := h.engine.TopN(r.Context(), category, n)
	if err != nil {
		respondError(w, err, "rank "+category)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.RankingResponse{Category: category, Works: works})
}
