// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/danielhkuo/media-ranker/models"
)

const userColumns = `id, name, join_date, created_at`

func scanUser(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.JoinDate, &u.CreatedAt)
	return u, err
}

// CreateUser inserts u with a fresh ID and creation timestamp.
// Callers validate u first.
func (s *Store) CreateUser(ctx context.Context, u models.User) (models.User, error) {
	id, err := newID()
	if err != nil {
		return models.User{}, err
	}
	u.ID = id
	u.CreatedAt = s.now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO users (id, name, join_date, created_at)
		VALUES ($1, $2, $3, $4)
	`, u.ID, u.Name, u.JoinDate, u.CreatedAt)
	if err != nil {
		return models.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

func (s *Store) GetUser(ctx context.Context, id string) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user: %w", err)
	}
	return u, nil
}

// FindUserByName returns the earliest-created user with the given name.
func (s *Store) FindUserByName(ctx context.Context, name string) (models.User, error) {
	u, err := scanUser(s.db.QueryRowContext(ctx, `
		SELECT `+userColumns+` FROM users
		WHERE name = $1
		ORDER BY created_at, id
		LIMIT 1
	`, name))
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("failed to query user by name: %w", err)
	}
	return u, nil
}

func (s *Store) ListUsers(ctx context.Context) ([]models.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+userColumns+` FROM users ORDER BY created_at, id
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []models.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// DeleteUser removes the user, every vote they cast, and their sessions in
// one transaction.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user votes: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete user sessions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if n == 0 {
		return ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
