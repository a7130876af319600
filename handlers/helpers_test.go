// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"context"
	"net/http"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/danielhkuo/media-ranker/auth"
	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/cliparse"
	"github.com/danielhkuo/media-ranker/metrics"
	"github.com/danielhkuo/media-ranker/middleware"
	"github.com/danielhkuo/media-ranker/ranking"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/testutil"
	"github.com/danielhkuo/media-ranker/validate"
)

// testEnv bundles the handlers with the store and clock behind them.
type testEnv struct {
	store     *store.Store
	gate      *auth.Gate
	clock     *clock.Fixed
	metrics   *metrics.Metrics
	validator *validate.Validator
	users     *UserHandler
	works     *WorkHandler
	sessions  *SessionHandler
	rankings  *RankingHandler
}

func setupEnv(t *testing.T, cfg cliparse.Config) *testEnv {
	t.Helper()

	s, clk := testutil.SetupTestStore(t)
	v := validate.New(clk)
	gate := auth.NewGate(s, clk, v, cfg.SessionTTL)
	m := metrics.New(prometheus.NewRegistry(), nil)

	return &testEnv{
		store:     s,
		gate:      gate,
		clock:     clk,
		metrics:   m,
		validator: v,
		users:     NewUserHandler(s, gate, v, clk, cfg),
		works:     NewWorkHandler(s, gate, v, m, cfg),
		sessions:  NewSessionHandler(s, gate, clk, cfg),
		rankings:  NewRankingHandler(ranking.NewEngine(s), m),
	}
}

// login returns headers carrying a fresh session token for name.
func (e *testEnv) login(t *testing.T, name string) map[string]string {
	t.Helper()

	_, token, _, err := e.gate.LoginOrRegister(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to log in %s: %v", name, err)
	}
	return map[string]string{middleware.SessionTokenHeader: token}
}

// mux routes requests the same way the router does, without the outer
// middleware.
func (e *testEnv) mux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", e.rankings.Home)
	mux.HandleFunc("GET /users", e.users.List)
	mux.HandleFunc("POST /users", e.users.Create)
	mux.HandleFunc("GET /users/current", e.sessions.Current)
	mux.HandleFunc("GET /users/{id}", e.users.Show)
	mux.HandleFunc("DELETE /users/{id}", e.users.Delete)
	mux.HandleFunc("POST /login", e.sessions.Login)
	mux.HandleFunc("POST /logout", e.sessions.Logout)
	mux.HandleFunc("GET /works", e.works.List)
	mux.HandleFunc("POST /works", e.works.Create)
	mux.HandleFunc("GET /works/{id}", e.works.Show)
	mux.HandleFunc("PATCH /works/{id}", e.works.Update)
	mux.HandleFunc("DELETE /works/{id}", e.works.Delete)
	mux.HandleFunc("POST /works/{id}/upvote", e.works.Upvote)
	mux.HandleFunc("GET /spotlight", e.rankings.Spotlight)
	mux.HandleFunc("GET /rankings/{category}", e.rankings.Category)
	mux.HandleFunc("GET /rankings/{category}/top", e.rankings.TopTen)
	return mux
}
