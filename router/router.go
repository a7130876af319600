// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"database/sql"
	"net/http"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/handlers"
	"github.com/danielhkuo/media-ranker/metrics"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/ranking"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/validate"
)

// NewRouter wires every route. The returned handler applies CORS, metrics,
// and request logging around the mux.
func NewRouter(db *sql.DB, cfg cliparse.Config, clk clock.Clock, m *metrics.Metrics) http.Handler {
	mux := http.NewServeMux()

	// Shared dependencies
	s := store.New(db, clk)
	v := validate.New(clk)
	gate := auth.NewGate(s, clk, v, cfg.SessionTTL)
	engine := ranking.NewEngine(s)

	// Initialize handlers
	userHandler := handlers.NewUserHandler(s, gate, v, clk, cfg)
	workHandler := handlers.NewWorkHandler(s, gate, v, m, cfg)
	sessionHandler := handlers.NewSessionHandler(s, gate, clk, cfg)
	rankingHandler := handlers.NewRankingHandler(engine, m)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})
	mux.Handle("GET /metrics", m.Handler())

	// Home page: spotlight plus top ten per category
	mux.HandleFunc("GET /{$}", rankingHandler.Home)

	// Users
	mux.HandleFunc("GET /users", userHandler.List)
	mux.HandleFunc("POST /users", userHandler.Create)
	mux.HandleFunc("GET /users/current", sessionHandler.Current)
	mux.HandleFunc("GET /users/{id}", userHandler.Show)
	mux.HandleFunc("DELETE /users/{id}", userHandler.Delete)

	// Sessions
	mux.HandleFunc("POST /login", sessionHandler.Login)
	mux.HandleFunc("POST /logout", sessionHandler.Logout)

	// Works
	mux.HandleFunc("GET /works", workHandler.List)
	mux.HandleFunc("POST /works", workHandler.Create)
	mux.HandleFunc("GET /works/{id}", workHandler.Show)
	mux.HandleFunc("PATCH /works/{id}", workHandler.Update)
	mux.HandleFunc("PUT /works/{id}", workHandler.Update)
	mux.HandleFunc("DELETE /works/{id}", workHandler.Delete)
	mux.HandleFunc("POST /works/{id}/upvote", workHandler.Upvote)

	// Rankings (read-only)
	mux.HandleFunc("GET /spotlight", rankingHandler.Spotlight)
	mux.HandleFunc("GET /rankings/{category}", rankingHandler.Category)
	mux.HandleFunc("GET /rankings/{category}/top", rankingHandler.TopTen)

	return middleware.CORS(middleware.WithMetrics(m, middleware.WithLogging(mux)))
}
