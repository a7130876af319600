// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package store persists users, works, votes, and sessions over database/sql.
// Queries use $n placeholders so the same SQL runs on PostgreSQL and SQLite.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"github.com/danielhkuo/media-ranker/clock"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrWorkNotFound    = errors.New("work not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidUser     = errors.New("invalid user")
	ErrDuplicateVote   = errors.New("only one vote is allowed per user, per work")
)

// Store reads and writes users, works, votes, and sessions.
type Store struct {
	db    *sql.DB
	clock clock.Clock
}

func New(db *sql.DB, c clock.Clock) *Store {
	return &Store{db: db, clock: c}
}

func (s *Store) now() time.Time {
	return s.clock.Now().UTC()
}

// newID returns a time-ordered UUID so IDs sort in creation order.
func newID() (string, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return "", fmt.Errorf("failed to generate id: %w", err)
	}
	return id.String(), nil
}

// isUniqueViolation recognizes unique constraint failures from both drivers.
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		return code == sqlite3.SQLITE_CONSTRAINT_UNIQUE || code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY
	}

	return false
}
