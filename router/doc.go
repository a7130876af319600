// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the Media Ranker API.

	handler := router.NewRouter(db, cfg, clock.Real{}, m)

# Endpoints

	GET    /health
	GET    /metrics
	GET    /                         - Spotlight and top ten per category

	GET    /users
	POST   /users
	GET    /users/current
	GET    /users/{id}
	DELETE /users/{id}

	POST   /login                    - Log in by name, registering if new
	POST   /logout

	GET    /works                    - Optional ?category=
	POST   /works
	GET    /works/{id}
	PATCH  /works/{id}               - PUT is accepted too
	DELETE /works/{id}
	POST   /works/{id}/upvote

	GET    /spotlight
	GET    /rankings/{category}      - Optional ?limit=n
	GET    /rankings/{category}/top
*/
package router
