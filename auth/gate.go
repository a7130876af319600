// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/danielhkuo/media-ranker/clock"
	"github.com/danielhkuo/media-ranker/models"
	"github.com/danielhkuo/media-ranker/store"
	"github.com/danielhkuo/media-ranker/validate"
)

var (
	ErrNotAuthenticated = errors.New("you must be logged in to perform that action")
	ErrInvalidName      = validate.ErrInvalidName
)

// Store is the subset of store.Store the gate needs.
type Store interface {
	GetUser(ctx context.Context, id string) (models.User, error)
	FindUserByName(ctx context.Context, name string) (models.User, error)
	CreateUser(ctx context.Context, u models.User) (models.User, error)
	CreateSession(ctx context.Context, token, userID string, ttl time.Duration) (models.Session, error)
	GetSession(ctx context.Context, token string) (models.Session, error)
	DeleteSession(ctx context.Context, token string) (bool, error)
	DeleteExpiredSessions(ctx context.Context) (int64, error)
}

// Gate resolves session tokens to users and issues new sessions.
type Gate struct {
	store     Store
	clock     clock.Clock
	validator *validate.Validator
	ttl       time.Duration
}

// NewGate builds a gate over s. The validator checks names on registration
// and must share c's notion of today.
func NewGate(s Store, c clock.Clock, v *validate.Validator, ttl time.Duration) *Gate {
	return &Gate{
		store:     s,
		clock:     c,
		validator: v,
		ttl:       ttl,
	}
}

// ResolveCurrentUser returns the user bound to token, or nil when the token
// is empty, unknown, expired, or points at a deleted user. Only store
// failures return an error.
func (g *Gate) ResolveCurrentUser(ctx context.Context, token string) (*models.User, error) {
	if token == "" || ValidateTokenFormat(token) != nil {
		return nil, nil
	}

	sess, err := g.store.GetSession(ctx, HashToken(token))
	if errors.Is(err, store.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if !g.clock.Now().Before(sess.ExpiresAt) {
		return nil, nil
	}

	user, err := g.store.GetUser(ctx, sess.UserID)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// RequireLogin is ResolveCurrentUser with ErrNotAuthenticated in place of nil.
func (g *Gate) RequireLogin(ctx context.Context, token string) (*models.User, error) {
	user, err := g.ResolveCurrentUser(ctx, token)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrNotAuthenticated
	}
	return user, nil
}

// LoginOrRegister logs in the earliest-created user with name, creating one
// (joined today) if none exists. It returns the user, a new session token,
// and whether the user was created.
func (g *Gate) LoginOrRegister(ctx context.Context, name string) (models.User, string, bool, error) {
	name = strings.TrimSpace(name)

	isNew := false
	user, err := g.store.FindUserByName(ctx, name)
	switch {
	case errors.Is(err, store.ErrUserNotFound):
		// Empty names land here too and fail validation.
		candidate, err := g.validator.User(models.CreateUserRequest{Name: name})
		if err != nil {
			return models.User{}, "", false, err
		}
		user, err = g.store.CreateUser(ctx, candidate)
		if err != nil {
			return models.User{}, "", false, err
		}
		isNew = true
		slog.Info("user registered", "user_id", user.ID, "name", user.Name)
	case err != nil:
		return models.User{}, "", false, err
	}

	token, err := GenerateSessionToken()
	if err != nil {
		return models.User{}, "", false, err
	}
	if _, err := g.store.CreateSession(ctx, HashToken(token), user.ID, g.ttl); err != nil {
		return models.User{}, "", false, fmt.Errorf("failed to create session: %w", err)
	}

	if n, err := g.store.DeleteExpiredSessions(ctx); err != nil {
		slog.Warn("failed to prune expired sessions", "error", err)
	} else if n > 0 {
		slog.Debug("pruned expired sessions", "count", n)
	}

	return user, token, isNew, nil
}

// Logout ends the session for token and reports whether a live one existed.
// An expired session is removed but reported as absent.
func (g *Gate) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" || ValidateTokenFormat(token) != nil {
		return false, nil
	}

	hashed := HashToken(token)
	sess, err := g.store.GetSession(ctx, hashed)
	if errors.Is(err, store.ErrSessionNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	deleted, err := g.store.DeleteSession(ctx, hashed)
	if err != nil {
		return false, err
	}
	return deleted && g.clock.Now().Before(sess.ExpiresAt), nil
}
