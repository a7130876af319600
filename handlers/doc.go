// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the Media Ranker API.

# Handler Types

Each handler is a struct built over the shared store:

  - UserHandler: list, create, show, and delete users
  - WorkHandler: work CRUD and upvoting
  - SessionHandler: login by name, logout, current user
  - RankingHandler: home page, spotlight, per-category rankings

Handlers are created via constructor functions:

	v := validate.New(clk)
	workHandler := handlers.NewWorkHandler(s, gate, v, m, cfg)

The validator is built once and shared by every handler and the gate.

# Upvoting

	POST /works/{id}/upvote

Always requires a session, sent as the session_token cookie or the
X-Session-Token header. A user gets one vote per work; a second attempt
returns 409.

# Write Policy

With RequireLoginForWrites set, creating, updating, or deleting users and
works also requires a session. Otherwise those routes are open.

# Errors

respondError maps domain errors to statuses:

	validate.Errors          → 400 with per-field errors
	models.ErrInvalidCategory → 400
	store.ErrUserNotFound    → 404
	store.ErrWorkNotFound    → 404
	store.ErrDuplicateVote   → 409
	auth.ErrNotAuthenticated → 401
	anything else            → 500 "Database error"
*/
package handlers
