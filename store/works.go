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

const workColumns = `id, category, title, creator, publication_year, description, created_at`

func scanWork(row interface{ Scan(...any) error }) (models.Work, error) {
	var w models.Work
	err := row.Scan(&w.ID, &w.Category, &w.Title, &w.Creator, &w.PublicationYear, &w.Description, &w.CreatedAt)
	return w, err
}

// CreateWork inserts w with a fresh ID and creation timestamp.
// Callers validate w first.
func (s *Store) CreateWork(ctx context.Context, w models.Work) (models.Work, error) {
	id, err := newID()
	if err != nil {
		return models.Work{}, err
	}
	w.ID = id
	w.CreatedAt = s.now()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO works (id, category, title, creator, publication_year, description, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, w.ID, w.Category, w.Title, w.Creator, w.PublicationYear, w.Description, w.CreatedAt)
	if err != nil {
		return models.Work{}, fmt.Errorf("failed to insert work: %w", err)
	}

	return w, nil
}

func (s *Store) GetWork(ctx context.Context, id string) (models.Work, error) {
	w, err := scanWork(s.db.QueryRowContext(ctx, `
		SELECT `+workColumns+` FROM works WHERE id = $1
	`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Work{}, ErrWorkNotFound
	}
	if err != nil {
		return models.Work{}, fmt.Errorf("failed to query work: %w", err)
	}
	return w, nil
}

// ListWorks returns works in creation order. An empty category lists all.
func (s *Store) ListWorks(ctx context.Context, category string) ([]models.Work, error) {
	query := `SELECT ` + workColumns + ` FROM works`
	var args []any
	if category != "" {
		query += ` WHERE category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY created_at, id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query works: %w", err)
	}
	defer rows.Close()

	works := []models.Work{}
	for rows.Next() {
		w, err := scanWork(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work: %w", err)
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

// UpdateWork overwrites the mutable fields of an existing work. ID and
// CreatedAt are preserved.
func (s *Store) UpdateWork(ctx context.Context, w models.Work) (models.Work, error) {
	res, err := s.db.ExecContext(ctx, `
		UPDATE works
		SET category = $1, title = $2, creator = $3, publication_year = $4, description = $5
		WHERE id = $6
	`, w.Category, w.Title, w.Creator, w.PublicationYear, w.Description, w.ID)
	if err != nil {
		return models.Work{}, fmt.Errorf("failed to update work: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return models.Work{}, fmt.Errorf("failed to update work: %w", err)
	}
	if n == 0 {
		return models.Work{}, ErrWorkNotFound
	}

	return s.GetWork(ctx, w.ID)
}

// DeleteWork removes the work and every vote cast for it in one transaction.
func (s *Store) DeleteWork(ctx context.Context, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM votes WHERE work_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete work votes: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM works WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete work: %w", err)
	}
	if n == 0 {
		return ErrWorkNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// WorkTallies returns every work in the category (all categories when empty)
// with its current vote count, in creation order.
func (s *Store) WorkTallies(ctx context.Context, category string) ([]models.WorkTally, error) {
	query := `
		SELECT w.id, w.category, w.title, w.creator, w.publication_year, w.description, w.created_at,
		       (SELECT COUNT(*) FROM votes v WHERE v.work_id = w.id) AS vote_count
		FROM works w`
	var args []any
	if category != "" {
		query += ` WHERE w.category = $1`
		args = append(args, category)
	}
	query += ` ORDER BY w.created_at, w.id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tallies: %w", err)
	}
	defer rows.Close()

	tallies := []models.WorkTally{}
	for rows.Next() {
		var t models.WorkTally
		w := &t.Work
		if err := rows.Scan(&w.ID, &w.Category, &w.Title, &w.Creator, &w.PublicationYear,
			&w.Description, &w.CreatedAt, &t.VoteCount); err != nil {
			return nil, fmt.Errorf("failed to scan tally: %w", err)
		}
		tallies = append(tallies, t)
	}
	return tallies, rows.Err()
}
