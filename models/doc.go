// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateUserRequest: name, join_date
  - LoginRequest: name (or username)
  - WorkRequest: category, title, creator, publication_year, description
  - UpdateWorkRequest: same fields, all optional

# Response Types

Types for JSON responses:

  - UserResponse, UserDetailResponse: user plus humanized join date and votes
  - WorkDetailResponse: work, vote_count, votes
  - LoginResponse: user, session_token, is_new
  - VoteResponse: vote, vote_count
  - HomeResponse: spotlight and top ten per category
  - RankingResponse: category and ranked works
  - ErrorResponse: error, message, errors (field-level)

# Domain Types

  - User: identified by name at login
  - Work: an album, book, or movie
  - Vote: one user's upvote of one work
  - Session: token bound to a user until expires_at
  - WorkTally: a work and its current vote count
  - RankedWork: a tally with its 1-indexed rank

# Constants

Categories:

	CategoryAlbum = "album"
	CategoryBook  = "book"
	CategoryMovie = "movie"

Dates travel as DateLayout ("2006-01-02").
*/
package models
