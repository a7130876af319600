// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the Media Ranker API server.

Media Ranker is a catalog of albums, books, and movies. Users log in by
name, upvote works (once each), and browse works ranked by votes.

# Starting the Server

	DATABASE_TYPE=postgres DATABASE_URL=postgres://... go run .

Or with SQLite:

	go run . -t sqlite -d media-ranker.db

Settings may also come from a .env file in the working directory.

# Configuration

  - PORT (-p): Server port (default: 3318)
  - DATABASE_URL (-d): connection string or SQLite path
  - DATABASE_TYPE (-t): postgres or sqlite (default: sqlite)
  - SESSION_TTL (-session-ttl): session lifetime (default: 720h)
  - REQUIRE_LOGIN_WRITES (-require-login-writes): gate catalog writes
  - COOKIE_SECURE (-cookie-secure): mark the session cookie Secure
  - LOG_LEVEL (-log-level): debug, info, warn, error

# Architecture

  - handlers: HTTP request handlers
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, metrics, JSON helpers
  - store: users, works, votes, and sessions over database/sql
  - ranking: spotlight, top N, and ordered category listings
  - auth: session tokens and the login gate
  - validate: field validation for users and works
  - metrics: Prometheus collectors
  - db: connection and schema creation
  - cliparse: configuration parsing
*/
package main
